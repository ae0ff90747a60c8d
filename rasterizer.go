package soft3d

import (
	"fmt"
	"math"

	"github.com/gogpu/soft3d/linalg"
)

// RasterStats counts what happened to the pixels a triangle touched.
type RasterStats struct {
	// Covered is the number of pixel centers inside a triangle.
	Covered int
	// Occluded pixels failed the depth test.
	Occluded int
	// Discarded pixels were rejected by the fragment shader.
	Discarded int
	// Written pixels updated the depth buffer.
	Written int
}

// Add accumulates o into s.
func (s *RasterStats) Add(o RasterStats) {
	s.Covered += o.Covered
	s.Occluded += o.Occluded
	s.Discarded += o.Discarded
	s.Written += o.Written
}

// Barycentric returns the weights of p with respect to tri. The weights
// sum to one. A degenerate triangle yields non-finite weights.
func Barycentric(tri [3]linalg.Vec2d, p linalg.Vec2d) linalg.Vec3d {
	v0 := tri[1].Sub(tri[0])
	v1 := tri[2].Sub(tri[0])
	v2 := p.Sub(tri[0])
	den := v0[0]*v1[1] - v1[0]*v0[1]
	b1 := (v2[0]*v1[1] - v1[0]*v2[1]) / den
	b2 := (v0[0]*v2[1] - v2[0]*v0[1]) / den
	return linalg.Vec3d{1 - b1 - b2, b1, b2}
}

// Rasterize draws one triangle given in clip space.
//
// Pixels are sampled at integer coordinates. A pixel is covered when all
// three screen-space weights are non-negative, so edges shared by two
// triangles are covered by both. Weights are then corrected for
// perspective and used to interpolate clip z. A fragment passes the depth
// test only if it is strictly closer than the stored value.
//
// frame may be nil for depth-only passes. Otherwise it must have the same
// size as depth.
func Rasterize(clip [3]linalg.Vec4d, s Shader, depth *DepthBuffer, frame *Texture) (RasterStats, error) {
	var stats RasterStats
	w, h := depth.width, depth.height
	if frame != nil && (frame.width != w || frame.height != h) {
		return stats, fmt.Errorf("soft3d: frame %dx%d vs depth %dx%d: %w",
			frame.width, frame.height, w, h, ErrInvalidDimensions)
	}
	if w == 0 || h == 0 {
		return stats, nil
	}

	vp := s.Viewport()
	var pts [3]linalg.Vec2d
	for i, v := range clip {
		sv := vp.MulVec(v)
		pts[i] = sv.Div(sv[3]).Project2()
	}

	area := pts[1].Sub(pts[0])[0]*pts[2].Sub(pts[0])[1] - pts[2].Sub(pts[0])[0]*pts[1].Sub(pts[0])[1]
	if area == 0 || math.IsNaN(area) {
		return stats, nil
	}

	minX, minY := float64(w-1), float64(h-1)
	maxX, maxY := 0.0, 0.0
	for _, p := range pts {
		minX = math.Min(minX, math.Floor(p[0]))
		minY = math.Min(minY, math.Floor(p[1]))
		maxX = math.Max(maxX, math.Ceil(p[0]))
		maxY = math.Max(maxY, math.Ceil(p[1]))
	}
	x0 := int(math.Max(minX, 0))
	y0 := int(math.Max(minY, 0))
	x1 := int(math.Min(maxX, float64(w-1)))
	y1 := int(math.Min(maxY, float64(h-1)))

	z := linalg.Vec3d{clip[0][2], clip[1][2], clip[2][2]}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			bc := Barycentric(pts, linalg.Vec2d{float64(x), float64(y)})
			if !(bc[0] >= 0 && bc[1] >= 0 && bc[2] >= 0) {
				continue
			}
			stats.Covered++

			c := linalg.Vec3d{bc[0] / clip[0][3], bc[1] / clip[1][3], bc[2] / clip[2][3]}
			c = c.Div(c[0] + c[1] + c[2])

			i := x + y*w
			fz := float32(z.Dot(c))
			if !(fz < depth.data[i]) {
				stats.Occluded++
				continue
			}

			color := Black
			keep, err := s.Fragment(c, &color)
			if err != nil {
				return stats, fmt.Errorf("soft3d: fragment at (%d, %d): %w", x, y, err)
			}
			if !keep {
				stats.Discarded++
				continue
			}
			depth.data[i] = fz
			if frame != nil {
				frame.data[i] = color
			}
			stats.Written++
		}
	}
	return stats, nil
}

// DrawMesh runs the shader over faces triangles: three Vertex calls per
// face followed by Rasterize. It stops at the first error.
func DrawMesh(s Shader, faces int, depth *DepthBuffer, frame *Texture) (RasterStats, error) {
	var total RasterStats
	for f := 0; f < faces; f++ {
		var tri [3]linalg.Vec4d
		for slot := range tri {
			tri[slot] = s.Vertex(f, slot)
		}
		st, err := Rasterize(tri, s, depth, frame)
		total.Add(st)
		if err != nil {
			return total, fmt.Errorf("soft3d: face %d: %w", f, err)
		}
	}
	Logger().Debug("mesh drawn",
		"faces", faces,
		"covered", total.Covered,
		"occluded", total.Occluded,
		"discarded", total.Discarded,
		"written", total.Written)
	return total, nil
}
