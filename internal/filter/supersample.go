package filter

import "github.com/gogpu/soft3d"

// Default supersampling parameters.
const (
	DefaultSupersampleFactor = 2
	DefaultSupersampleRadius = 1
)

// SupersampleFilter downsamples a frame with a box kernel.
type SupersampleFilter struct {
	// Factor is the ratio between the input and output sizes.
	Factor int

	// Radius is the half-width of the box around each sample. Radius 1
	// averages a 3×3 neighborhood.
	Radius int
}

// NewSupersampleFilter creates a filter that halves the frame with a 3×3
// box.
func NewSupersampleFilter() *SupersampleFilter {
	return &SupersampleFilter{
		Factor: DefaultSupersampleFactor,
		Radius: DefaultSupersampleRadius,
	}
}

// Supersample applies NewSupersampleFilter to frame.
func Supersample(frame *soft3d.Texture) *soft3d.Texture {
	return NewSupersampleFilter().Apply(frame)
}

// Apply returns frame shrunk by Factor in both directions. Each output
// pixel (x, y) is the integer mean of the in-bounds pixels of the box
// centered on (Factor·x, Factor·y). The result is opaque. A Factor below 1
// is treated as 1 and a negative Radius as 0.
func (f *SupersampleFilter) Apply(frame *soft3d.Texture) *soft3d.Texture {
	k := max(f.Factor, 1)
	rad := max(f.Radius, 0)
	w, h := frame.Width(), frame.Height()
	out := soft3d.NewTexture(w/k, h/k)
	src := frame.Pix()
	dst := out.Pix()

	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			var r, g, b, n int
			for j := -rad; j <= rad; j++ {
				sy := k*y + j
				if sy < 0 || sy >= h {
					continue
				}
				for i := -rad; i <= rad; i++ {
					sx := k*x + i
					if sx < 0 || sx >= w {
						continue
					}
					c := src[sx+sy*w]
					r += int(c.R)
					g += int(c.G)
					b += int(c.B)
					n++
				}
			}
			dst[x+y*out.Width()] = soft3d.Color{
				R: uint8(min(r/n, 255)),
				G: uint8(min(g/n, 255)),
				B: uint8(min(b/n, 255)),
				A: 255,
			}
		}
	}
	return out
}
