package filter

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/soft3d"
)

// Default ambient occlusion parameters.
const (
	DefaultAODirections = 8
	DefaultAOSteps      = 100
	DefaultAOBackground = 1e5
	DefaultAOMaxRise    = 0.1
	DefaultAOFalloff    = 10
	DefaultAOPower      = 100
)

// AOFilter darkens a frame by a horizon-based occlusion term estimated
// from its depth buffer.
type AOFilter struct {
	// Directions is the number of search directions, evenly spread over a
	// full turn.
	Directions int

	// Steps is the number of one-pixel steps taken along each direction.
	Steps int

	// Background is the depth beyond which pixels are left alone.
	Background float32

	// MaxRise is the largest depth difference that still counts as an
	// occluder. Taller neighbors are ignored.
	MaxRise float32

	// Falloff is the distance in pixels at which a horizon stops
	// contributing.
	Falloff float32

	// Power sharpens the occlusion factor.
	Power float32
}

// NewAOFilter creates a filter with the default parameters.
func NewAOFilter() *AOFilter {
	return &AOFilter{
		Directions: DefaultAODirections,
		Steps:      DefaultAOSteps,
		Background: DefaultAOBackground,
		MaxRise:    DefaultAOMaxRise,
		Falloff:    DefaultAOFalloff,
		Power:      DefaultAOPower,
	}
}

// AmbientOcclusion applies NewAOFilter to frame.
func AmbientOcclusion(depth *soft3d.DepthBuffer, frame *soft3d.Texture) error {
	return NewAOFilter().Apply(depth, frame)
}

// Apply darkens frame in place. Both buffers must have the same size.
//
// For every pixel no deeper than Background the maximum horizon angle is
// searched along Directions directions, up to Steps steps each. The
// occlusion factor 1 - Σh/(π/2·Directions) is raised to Power and scales
// the RGB channels; alpha is kept. A filter with no directions does
// nothing.
func (f *AOFilter) Apply(depth *soft3d.DepthBuffer, frame *soft3d.Texture) error {
	w, h := depth.Width(), depth.Height()
	if frame.Width() != w || frame.Height() != h {
		return fmt.Errorf("filter: frame %dx%d vs depth %dx%d: %w",
			frame.Width(), frame.Height(), w, h, soft3d.ErrInvalidDimensions)
	}
	if f.Directions <= 0 {
		return nil
	}

	z := depth.Data()
	pix := frame.Pix()
	step := 2 * math32.Pi / float32(f.Directions)
	norm := math32.Pi / 2 * float32(f.Directions)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			pz := z[i]
			if !(pz <= f.Background) {
				continue
			}

			var sum, alpha float32
			for d := 0; d < f.Directions; d++ {
				dir := [2]float32{math32.Cos(alpha), math32.Sin(alpha)}
				sum += f.horizon(z, w, h, x, y, pz, dir)
				alpha += step
			}

			ao := math32.Pow(1-sum/norm, f.Power)
			c := &pix[i]
			c.R = scale(c.R, ao)
			c.G = scale(c.G, ao)
			c.B = scale(c.B, ao)
		}
	}
	return nil
}

// horizon returns the attenuated maximum elevation angle seen from (x, y)
// along dir.
func (f *AOFilter) horizon(z []float32, w, h, x, y int, pz float32, dir [2]float32) float32 {
	px, py := float32(x), float32(y)
	var best, bestDist float32
	for s := 0; s < f.Steps; s++ {
		dx, dy := dir[0]*float32(s), dir[1]*float32(s)
		sx, sy := int(px+dx), int(py+dy)
		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			break
		}

		dist := math32.Sqrt(dx*dx + dy*dy)
		if dist < 1 {
			continue
		}
		rise := pz - z[sx+sy*w]
		if rise > f.MaxRise {
			continue
		}
		if a := math32.Atan(rise / dist); a > best {
			best = a
			bestDist = dist
		}
	}
	return best * (1 - bestDist/f.Falloff)
}

// scale multiplies a channel by f, saturating to [0, 255].
func scale(c uint8, f float32) uint8 {
	v := float32(c) * f
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
