package shaders

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/linalg"
)

// testMesh stores one position, uv and normal per corner.
type testMesh struct {
	pos     []linalg.Vec3d
	uv      []linalg.Vec2d
	nrm     []linalg.Vec3d
	noUV    bool
	noNorms bool
}

func (m *testMesh) FaceCount() int                       { return len(m.pos) / 3 }
func (m *testMesh) Position(face, slot int) linalg.Vec3d { return m.pos[face*3+slot] }
func (m *testMesh) UV(face, slot int) linalg.Vec2d       { return m.uv[face*3+slot] }
func (m *testMesh) Normal(face, slot int) linalg.Vec3d   { return m.nrm[face*3+slot] }
func (m *testMesh) HasUV() bool                          { return !m.noUV }
func (m *testMesh) HasNormals() bool                     { return !m.noNorms }

// facing returns one triangle in the z = 0.5 plane whose normal is n.
func facing(n linalg.Vec3d) *testMesh {
	return &testMesh{
		pos: []linalg.Vec3d{{1, 1, 0.5}, {3, 1, 0.5}, {1, 3, 0.5}},
		uv:  []linalg.Vec2d{{0, 0}, {0.99, 0}, {0, 0.99}},
		nrm: []linalg.Vec3d{n, n, n},
	}
}

func solid(c soft3d.Color) *soft3d.Texture {
	t := soft3d.NewTexture(2, 2)
	t.Fill(c)
	return t
}

func identity() linalg.Mat4d { return linalg.Identity4[float64]() }

// shade runs Vertex for the first face and one Fragment at the centroid.
func shade(t *testing.T, s *PhongShader, m soft3d.Mesh) (soft3d.Color, error) {
	t.Helper()
	if err := s.SetMesh(m); err != nil {
		t.Fatalf("SetMesh: %v", err)
	}
	for slot := 0; slot < 3; slot++ {
		s.Vertex(0, slot)
	}
	var c soft3d.Color
	_, err := s.Fragment(linalg.Vec3d{1.0 / 3, 1.0 / 3, 1.0 / 3}, &c)
	return c, err
}

func TestDepthShaderVertex(t *testing.T) {
	mv := linalg.LookAt(linalg.Vec3d{1, 1, 3}, linalg.Vec3d{}, linalg.Vec3d{0, 1, 0})
	proj := linalg.Pinhole(3)
	s := NewDepthShader(mv, proj, linalg.Viewport(0, 0, 8, 8))
	m := facing(linalg.Vec3d{0, 0, 1})
	s.SetMesh(m)

	want := proj.MulVec(mv.MulVec(m.pos[1].Embed(1)))
	if got := s.Vertex(0, 1); !got.Approx(want, 1e-12) {
		t.Errorf("Vertex = %v, want %v", got, want)
	}
	if keep, err := s.Fragment(linalg.Vec3d{}, nil); !keep || err != nil {
		t.Errorf("Fragment = %v, %v; want true, nil", keep, err)
	}
}

func TestDepthShaderRunOnce(t *testing.T) {
	s := NewDepthShader(identity(), identity(), identity())
	s.SetMesh(facing(linalg.Vec3d{0, 0, 1}))

	depth := soft3d.NewDepthBuffer(4, 4)
	frame := soft3d.NewTexture(4, 4)
	if err := s.RunOnce(depth, frame); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if z, _ := depth.Depth(1, 1); z != 0.5 {
		t.Errorf("depth (1, 1) = %v, want 0.5", z)
	}
	if z, _ := depth.Depth(0, 0); !math32.IsInf(z, 1) {
		t.Errorf("depth (0, 0) = %v, want untouched", z)
	}
	for i, c := range frame.Pix() {
		if c != (soft3d.Color{}) {
			t.Fatalf("depth pass wrote color at %d", i)
		}
	}
}

func TestRunOnceWithoutMesh(t *testing.T) {
	depth := soft3d.NewDepthBuffer(2, 2)
	if err := NewDepthShader(identity(), identity(), identity()).RunOnce(depth, nil); !errors.Is(err, ErrNoMesh) {
		t.Errorf("DepthShader.RunOnce error = %v, want ErrNoMesh", err)
	}
	ph := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1})
	if err := ph.RunOnce(depth, soft3d.NewTexture(2, 2)); !errors.Is(err, ErrNoMesh) {
		t.Errorf("PhongShader.RunOnce error = %v, want ErrNoMesh", err)
	}
}

func TestShadowMatrix(t *testing.T) {
	mvL := linalg.LookAt(linalg.Vec3d{1, 2, 1}, linalg.Vec3d{}, linalg.Vec3d{0, 1, 0})
	projL := linalg.Pinhole(2.449)
	vpL := linalg.Viewport(2, 2, 12, 12)
	mvC := linalg.LookAt(linalg.Vec3d{1, 1, 3}, linalg.Vec3d{}, linalg.Vec3d{0, 1, 0})

	m := ShadowMatrix(vpL, projL, mvL, mvC)
	world := linalg.Vec4d{0.3, -0.2, 0.1, 1}
	got := m.MulVec(mvC.MulVec(world))
	want := vpL.MulVec(projL.MulVec(mvL.MulVec(world)))
	if !got.Approx(want, 1e-9) {
		t.Errorf("shadow transform = %v, want %v", got, want)
	}
}

func TestPhongLight(t *testing.T) {
	mv := linalg.LookAt(linalg.Vec3d{0, 0, 3}, linalg.Vec3d{}, linalg.Vec3d{0, 1, 0})
	s := NewPhongShader(mv, identity(), identity(), linalg.Vec3d{0, 0, 2})
	l := s.Light()
	if l[3] != 0 {
		t.Errorf("light w = %v, want 0", l[3])
	}
	// the camera sits on +z looking at the origin, so +z points back at the viewer
	if !l.Approx(linalg.Vec4d{0, 0, -1, 0}, 1e-12) {
		t.Errorf("Light() = %v, want (0, 0, -1, 0)", l)
	}
}

func TestPhongDiffuse(t *testing.T) {
	tests := []struct {
		name   string
		normal linalg.Vec3d
		opts   []Option
		want   soft3d.Color
	}{
		{"lit", linalg.Vec3d{0, 0, 1}, []Option{WithDiffuseMap(solid(soft3d.RGB(100, 50, 10)))}, soft3d.RGB(120, 70, 30)},
		{"no diffuse map is white", linalg.Vec3d{0, 0, 1}, nil, soft3d.RGB(255, 255, 255)},
		{"facing away keeps ambient", linalg.Vec3d{0, 0, -1}, []Option{WithDiffuseMap(solid(soft3d.RGB(100, 50, 10)))}, soft3d.RGB(20, 20, 20)},
		{"custom ambient", linalg.Vec3d{0, 0, -1}, []Option{WithAmbient(5)}, soft3d.RGB(5, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1}, tt.opts...)
			got, err := shade(t, s, facing(tt.normal))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPhongSpecular(t *testing.T) {
	diffuse := solid(soft3d.RGB(100, 50, 10))
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, -1},
		WithDiffuseMap(diffuse))
	plain, err := shade(t, s, facing(linalg.Vec3d{0, 0, -1}))
	if err != nil {
		t.Fatal(err)
	}

	s.SetSpecularMap(solid(soft3d.RGB(0, 0, 10)))
	shiny, err := shade(t, s, facing(linalg.Vec3d{0, 0, -1}))
	if err != nil {
		t.Fatal(err)
	}

	// head-on reflection gives specular 1 on top of diffuse 1
	if plain != soft3d.RGB(120, 70, 30) {
		t.Errorf("without specular = %v, want (120, 70, 30)", plain)
	}
	if shiny != soft3d.RGB(220, 120, 40) {
		t.Errorf("with specular = %v, want (220, 120, 40)", shiny)
	}
}

func TestPhongNormalMap(t *testing.T) {
	diffuse := solid(soft3d.RGB(100, 100, 100))
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1},
		WithDiffuseMap(diffuse),
		// tangent-space +x: the surface now faces sideways
		WithNormalMap(solid(soft3d.RGB(255, 128, 128))))
	got, err := shade(t, s, facing(linalg.Vec3d{0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	if got.R > 30 {
		t.Errorf("sideways normal should receive almost no light, got %v", got)
	}

	s.SetNormalMap(nil)
	got, err = shade(t, s, facing(linalg.Vec3d{0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	if got != soft3d.RGB(120, 120, 120) {
		t.Errorf("without normal map = %v, want (120, 120, 120)", got)
	}
}

func TestPhongTangentBasis(t *testing.T) {
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1})
	m := facing(linalg.Vec3d{0, 0, 1})
	if err := s.SetMesh(m); err != nil {
		t.Fatal(err)
	}
	for slot := 0; slot < 3; slot++ {
		s.Vertex(0, slot)
	}
	b := s.tangentBasis(linalg.Vec4d{0, 0, 1, 0})
	// u runs along +x and v along +y in this triangle
	if !b.Approx(identity(), 1e-9) {
		t.Errorf("tangent basis = %v, want identity", b)
	}
}

func TestPhongShadow(t *testing.T) {
	diffuse := solid(soft3d.RGB(100, 50, 10))
	tests := []struct {
		name   string
		stored float32
		mesh   *testMesh
		want   soft3d.Color
	}{
		{"occluded", 0.2, facing(linalg.Vec3d{0, 0, 1}), soft3d.RGB(60, 40, 24)},
		{"within bias", 0.45, facing(linalg.Vec3d{0, 0, 1}), soft3d.RGB(120, 70, 30)},
		{"outside the map is lit", 0.2, func() *testMesh {
			m := facing(linalg.Vec3d{0, 0, 1})
			for i := range m.pos {
				m.pos[i][0] += 10
			}
			return m
		}(), soft3d.RGB(120, 70, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shadow := soft3d.NewDepthBuffer(4, 4)
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					_ = shadow.SetDepth(x, y, tt.stored)
				}
			}
			s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1},
				WithDiffuseMap(diffuse),
				WithShadowMap(shadow, identity()))
			got, err := shade(t, s, tt.mesh)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPhongShadowFactor(t *testing.T) {
	shadow := soft3d.NewDepthBuffer(4, 4)
	for i := range shadow.Data() {
		shadow.Data()[i] = 0
	}
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1},
		WithDiffuseMap(solid(soft3d.RGB(100, 100, 100))),
		WithShadowMap(shadow, identity()),
		WithShadowFactor(0),
		WithShadowBias(1))
	// depth 0.5 is within a bias of 1
	got, err := shade(t, s, facing(linalg.Vec3d{0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	if got != soft3d.RGB(120, 120, 120) {
		t.Errorf("color = %v, want lit", got)
	}

	s.SetShadowMap(shadow, identity())
	s.opts.shadowBias = 0.1
	got, err = shade(t, s, facing(linalg.Vec3d{0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	if got != soft3d.RGB(20, 20, 20) {
		t.Errorf("color = %v, want ambient only", got)
	}
}

func TestPhongSampleOutOfBounds(t *testing.T) {
	m := facing(linalg.Vec3d{0, 0, 1})
	for i := range m.uv {
		m.uv[i][0] += 1.5
	}
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1},
		WithDiffuseMap(solid(soft3d.White)))
	if _, err := shade(t, s, m); !errors.Is(err, soft3d.ErrOutOfBounds) {
		t.Errorf("Fragment error = %v, want ErrOutOfBounds", err)
	}

	depth := soft3d.NewDepthBuffer(4, 4)
	if err := s.RunOnce(depth, soft3d.NewTexture(4, 4)); !errors.Is(err, soft3d.ErrOutOfBounds) {
		t.Errorf("RunOnce error = %v, want ErrOutOfBounds", err)
	}
}

func TestPhongSetMeshAttributes(t *testing.T) {
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1})
	noUV := facing(linalg.Vec3d{0, 0, 1})
	noUV.noUV = true
	noNorms := facing(linalg.Vec3d{0, 0, 1})
	noNorms.noNorms = true

	for _, m := range []*testMesh{noUV, noNorms} {
		if err := s.SetMesh(m); !errors.Is(err, ErrMissingAttribute) {
			t.Errorf("SetMesh error = %v, want ErrMissingAttribute", err)
		}
	}
}

func TestPhongRunOnce(t *testing.T) {
	s := NewPhongShader(identity(), identity(), identity(), linalg.Vec3d{0, 0, 1},
		WithDiffuseMap(solid(soft3d.RGB(100, 50, 10))))
	if err := s.SetMesh(facing(linalg.Vec3d{0, 0, 1})); err != nil {
		t.Fatal(err)
	}
	depth := soft3d.NewDepthBuffer(4, 4)
	frame := soft3d.NewTexture(4, 4)
	if err := s.RunOnce(depth, frame); err != nil {
		t.Fatal(err)
	}
	if c, _ := frame.Color(1, 1); c != soft3d.RGB(120, 70, 30) {
		t.Errorf("pixel (1, 1) = %v, want (120, 70, 30)", c)
	}
	if c, _ := frame.Color(0, 0); c != (soft3d.Color{}) {
		t.Errorf("pixel (0, 0) = %v, want untouched", c)
	}
}
