package soft3d

import "github.com/chewxy/math32"

// DepthBuffer stores one float32 depth per pixel, row-major, the same
// layout as [Texture]. Smaller values are closer to the viewer.
type DepthBuffer struct {
	width  int
	height int
	data   []float32
}

// NewDepthBuffer creates a depth buffer with every sample at +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	d := &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
	d.Reset()
	return d
}

// Reset sets every sample back to +Inf.
func (d *DepthBuffer) Reset() {
	inf := math32.Inf(1)
	for i := range d.data {
		d.data[i] = inf
	}
}

// Width returns the width of the buffer.
func (d *DepthBuffer) Width() int {
	return d.width
}

// Height returns the height of the buffer.
func (d *DepthBuffer) Height() int {
	return d.height
}

// Data returns the sample slice, indexed by x + y*Width().
func (d *DepthBuffer) Data() []float32 {
	return d.data
}

// Depth returns the sample at (x, y).
func (d *DepthBuffer) Depth(x, y int) (float32, error) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0, ErrOutOfBounds
	}
	return d.data[x+y*d.width], nil
}

// SetDepth stores a sample at (x, y).
func (d *DepthBuffer) SetDepth(x, y int, z float32) error {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return ErrOutOfBounds
	}
	d.data[x+y*d.width] = z
	return nil
}

// Range returns the smallest and largest finite samples. ok is false when
// nothing has been written.
func (d *DepthBuffer) Range() (lo, hi float32, ok bool) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, z := range d.data {
		if math32.IsInf(z, 0) || math32.IsNaN(z) {
			continue
		}
		lo = math32.Min(lo, z)
		hi = math32.Max(hi, z)
		ok = true
	}
	return lo, hi, ok
}
