// Package obj parses triangulated Wavefront OBJ meshes.
//
// Only geometry records are read: v, vt, vn and f. Faces must be
// triangles. Texture coordinates are stored with V flipped (1 - v) so that
// they address textures whose row 0 is the top of the image.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/linalg"
)

// ErrMalformed is returned for records that cannot be parsed.
var ErrMalformed = errors.New("obj: malformed input")

// Model is a triangle mesh with optional texture coordinates and normals.
// It implements soft3d.Mesh.
type Model struct {
	positions []linalg.Vec3d
	uvs       []linalg.Vec2d
	normals   []linalg.Vec3d

	// one entry per face corner; -1 marks a missing attribute
	faceVert []int
	faceUV   []int
	faceNorm []int

	missingUV   int
	missingNorm int
}

var _ soft3d.Mesh = (*Model)(nil)

// FaceCount returns the number of triangles.
func (m *Model) FaceCount() int { return len(m.faceVert) / 3 }

// VertexCount returns the number of positions.
func (m *Model) VertexCount() int { return len(m.positions) }

// Position returns the position of a face corner.
func (m *Model) Position(face, slot int) linalg.Vec3d {
	return m.positions[m.faceVert[face*3+slot]]
}

// UV returns the texture coordinate of a face corner, or zero when the
// face has none.
func (m *Model) UV(face, slot int) linalg.Vec2d {
	i := m.faceUV[face*3+slot]
	if i < 0 {
		return linalg.Vec2d{}
	}
	return m.uvs[i]
}

// Normal returns the normal of a face corner, or zero when the face has
// none.
func (m *Model) Normal(face, slot int) linalg.Vec3d {
	i := m.faceNorm[face*3+slot]
	if i < 0 {
		return linalg.Vec3d{}
	}
	return m.normals[i]
}

// HasUV reports whether every face corner has a texture coordinate.
func (m *Model) HasUV() bool { return m.missingUV == 0 }

// HasNormals reports whether every face corner has a normal.
func (m *Model) HasNormals() bool { return m.missingNorm == 0 }

// Bounds returns the axis-aligned box of all positions. An empty model
// returns an inverted box.
func (m *Model) Bounds() (lo, hi linalg.Vec3d) {
	inf := math.Inf(1)
	lo = linalg.Vec3d{inf, inf, inf}
	hi = linalg.Vec3d{-inf, -inf, -inf}
	for _, p := range m.positions {
		for i := range p {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return lo, hi
}

// Parse reads an OBJ stream. Comments and unknown records are ignored.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v []float64
			if v, err = floats(fields[1:], 3, 4); err == nil {
				m.positions = append(m.positions, linalg.Vec3d{v[0], v[1], v[2]})
			}
		case "vt":
			var v []float64
			if v, err = floats(fields[1:], 2, 3); err == nil {
				m.uvs = append(m.uvs, linalg.Vec2d{v[0], 1 - v[1]})
			}
		case "vn":
			var v []float64
			if v, err = floats(fields[1:], 3, 4); err == nil {
				m.normals = append(m.normals, linalg.Vec3d{v[0], v[1], v[2]})
			}
		case "f":
			err = m.face(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("obj: line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}
	return m, nil
}

// floats parses between lo and hi numbers.
func floats(fields []string, lo, hi int) ([]float64, error) {
	if len(fields) < lo || len(fields) > hi {
		return nil, fmt.Errorf("want %d to %d values, got %d: %w", lo, hi, len(fields), ErrMalformed)
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", f, ErrMalformed)
		}
		out[i] = v
	}
	return out, nil
}

// face parses the corners of one triangle. Each corner is v, v/vt, v//vn
// or v/vt/vn.
func (m *Model) face(fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("face with %d vertices, want 3: %w", len(fields), ErrMalformed)
	}

	var vert, uv, norm [3]int
	for i, tok := range fields {
		parts := strings.Split(tok, "/")
		if len(parts) > 3 {
			return fmt.Errorf("face corner %q: %w", tok, ErrMalformed)
		}
		var err error
		if vert[i], err = index(parts[0], len(m.positions)); err != nil {
			return err
		}
		uv[i], norm[i] = -1, -1
		if len(parts) > 1 && parts[1] != "" {
			if uv[i], err = index(parts[1], len(m.uvs)); err != nil {
				return err
			}
		}
		if len(parts) > 2 {
			if norm[i], err = index(parts[2], len(m.normals)); err != nil {
				return err
			}
		}
	}

	for i := range vert {
		m.faceVert = append(m.faceVert, vert[i])
		m.faceUV = append(m.faceUV, uv[i])
		m.faceNorm = append(m.faceNorm, norm[i])
		if uv[i] < 0 {
			m.missingUV++
		}
		if norm[i] < 0 {
			m.missingNorm++
		}
	}
	return nil
}

// index resolves a 1-based or negative (relative) OBJ index against n
// entries seen so far.
func index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, ErrMalformed)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("index 0: %w", ErrMalformed)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d entries): %w", s, n, ErrMalformed)
	}
	return i, nil
}

// Load parses the OBJ file at path.
func Load(path string) (*Model, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("obj: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", path, err)
	}
	lo, hi := m.Bounds()
	soft3d.Logger().Debug("obj loaded",
		"path", path,
		"vertices", m.VertexCount(),
		"faces", m.FaceCount(),
		"min", lo,
		"max", hi)
	return m, nil
}
