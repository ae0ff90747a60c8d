package shaders

import (
	"fmt"
	"math"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/linalg"
)

// PhongShader is the main pass: diffuse and specular lighting from one
// directional light, tangent-space normal mapping and shadow map lookups.
//
// Varyings are kept for one triangle at a time, so a PhongShader must not
// be shared between concurrent draws.
type PhongShader struct {
	modelView     linalg.Mat4d
	projection    linalg.Mat4d
	viewport      linalg.Mat4d
	modelViewInvT linalg.Mat4d
	light         linalg.Vec4d

	mesh soft3d.Mesh
	opts phongOptions

	// per-triangle varyings, one column per slot
	uv     linalg.Mat2x3d
	normal linalg.Mat4d
	view   linalg.Mat4d
}

var _ soft3d.Shader = (*PhongShader)(nil)

// NewPhongShader creates a shader for the given camera. lightDir is a
// world-space direction towards the light; it is moved into view space and
// normalized once here.
func NewPhongShader(modelView, projection, viewport linalg.Mat4d, lightDir linalg.Vec3d, opts ...Option) *PhongShader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &PhongShader{
		modelView:     modelView,
		projection:    projection,
		viewport:      viewport,
		modelViewInvT: modelView.Inverse().Transpose(),
		light:         modelView.MulVec(lightDir.Embed(0)).Normalize(),
		opts:          o,
	}
}

// SetMesh binds the mesh drawn by RunOnce. Meshes that implement
// [AttributeMesh] must carry both texture coordinates and normals.
func (s *PhongShader) SetMesh(m soft3d.Mesh) error {
	if am, ok := m.(AttributeMesh); ok {
		if !am.HasUV() {
			return fmt.Errorf("shaders: texture coordinates: %w", ErrMissingAttribute)
		}
		if !am.HasNormals() {
			return fmt.Errorf("shaders: normals: %w", ErrMissingAttribute)
		}
	}
	s.mesh = m
	return nil
}

// SetNormalMap rebinds the normal map. nil disables normal mapping.
func (s *PhongShader) SetNormalMap(t *soft3d.Texture) { s.opts.normalMap = t }

// SetDiffuseMap rebinds the diffuse map. nil renders white.
func (s *PhongShader) SetDiffuseMap(t *soft3d.Texture) { s.opts.diffuseMap = t }

// SetSpecularMap rebinds the specular map. nil disables highlights.
func (s *PhongShader) SetSpecularMap(t *soft3d.Texture) { s.opts.specularMap = t }

// SetShadowMap rebinds the shadow map and its matrix. A nil depth buffer
// disables shadows.
func (s *PhongShader) SetShadowMap(depth *soft3d.DepthBuffer, m linalg.Mat4d) {
	s.opts.shadowDepth = depth
	s.opts.shadowMatrix = m
}

// Light returns the normalized view-space light direction.
func (s *PhongShader) Light() linalg.Vec4d { return s.light }

// ModelView implements soft3d.Shader.
func (s *PhongShader) ModelView() linalg.Mat4d { return s.modelView }

// Projection implements soft3d.Shader.
func (s *PhongShader) Projection() linalg.Mat4d { return s.projection }

// Viewport implements soft3d.Shader.
func (s *PhongShader) Viewport() linalg.Mat4d { return s.viewport }

// Vertex implements soft3d.Shader.
func (s *PhongShader) Vertex(face, slot int) linalg.Vec4d {
	s.uv.SetCol(slot, s.mesh.UV(face, slot))
	n := s.modelViewInvT.MulVec(s.mesh.Normal(face, slot).Embed(0))
	s.normal.SetCol(slot, n.Project3().Embed(0))
	view := s.modelView.MulVec(s.mesh.Position(face, slot).Embed(1))
	s.view.SetCol(slot, view)
	return s.projection.MulVec(view)
}

// Fragment implements soft3d.Shader.
func (s *PhongShader) Fragment(bar linalg.Vec3d, c *soft3d.Color) (bool, error) {
	bh := bar.Embed(0)
	n0 := s.normal.MulVec(bh).Normalize()
	uv := linalg.Vec2d{s.uv[0].Dot(bar), s.uv[1].Dot(bar)}

	n := n0
	if s.opts.normalMap != nil {
		t, err := s.opts.normalMap.Sample(uv)
		if err != nil {
			return false, fmt.Errorf("shaders: normal map: %w", err)
		}
		tn := linalg.Vec3d{float64(t.R), float64(t.G), float64(t.B)}.Mul(2).Div(255).Sub(linalg.Vec3d{1, 1, 1})
		n = s.tangentBasis(n0).MulVec(tn.Embed(0)).Normalize()
	}

	nl := n.Dot(s.light)
	diffuse := math.Max(0, nl)

	specular := 0.0
	if s.opts.specularMap != nil {
		r := n.Mul(2 * nl).Sub(s.light).Normalize()
		if -r[2] > 0 {
			t, err := s.opts.specularMap.Sample(uv)
			if err != nil {
				return false, fmt.Errorf("shaders: specular map: %w", err)
			}
			specular = math.Pow(-r[2], 5+float64(t.B))
		}
	}

	shadow := 1.0
	if s.opts.shadowDepth != nil {
		shadow = s.shadow(s.view.MulVec(bh))
	}

	texel := soft3d.White
	if s.opts.diffuseMap != nil {
		t, err := s.opts.diffuseMap.Sample(uv)
		if err != nil {
			return false, fmt.Errorf("shaders: diffuse map: %w", err)
		}
		texel = t
	}

	k := shadow * (diffuse + specular)
	c.R = s.channel(texel.R, k)
	c.G = s.channel(texel.G, k)
	c.B = s.channel(texel.B, k)
	c.A = 255
	return true, nil
}

// RunOnce draws the bound mesh.
func (s *PhongShader) RunOnce(depth *soft3d.DepthBuffer, frame *soft3d.Texture) error {
	if s.mesh == nil {
		return ErrNoMesh
	}
	if _, err := soft3d.DrawMesh(s, s.mesh.FaceCount(), depth, frame); err != nil {
		return fmt.Errorf("shaders: phong pass: %w", err)
	}
	return nil
}

// tangentBasis returns the matrix taking tangent-space normals into view
// space for the current triangle.
func (s *PhongShader) tangentBasis(n0 linalg.Vec4d) linalg.Mat4d {
	e3 := linalg.Vec4d{0, 0, 0, 1}
	a := linalg.Mat4d{
		s.view.Col(1).Sub(s.view.Col(0)),
		s.view.Col(2).Sub(s.view.Col(0)),
		n0,
		e3,
	}
	ai := a.Inverse()
	u := ai.MulVec(linalg.Vec4d{s.uv[0][1] - s.uv[0][0], s.uv[0][2] - s.uv[0][0], 0, 0})
	v := ai.MulVec(linalg.Vec4d{s.uv[1][1] - s.uv[1][0], s.uv[1][2] - s.uv[1][0], 0, 0})
	b := linalg.Mat4d{u.Normalize(), v.Normalize(), n0, e3}
	return b.Transpose()
}

// shadow returns the light factor for a view-space position.
func (s *PhongShader) shadow(pos linalg.Vec4d) float64 {
	p := s.opts.shadowMatrix.MulVec(pos)
	depth := p[2]
	p = p.Div(p[3])

	x, y := math.Floor(p[0]), math.Floor(p[1])
	buf := s.opts.shadowDepth
	if !(x >= 0 && x < float64(buf.Width()) && y >= 0 && y < float64(buf.Height())) {
		return 1
	}
	stored, err := buf.Depth(int(x), int(y))
	if err != nil {
		return 1
	}
	if depth-float64(stored) > s.opts.shadowBias {
		return s.opts.shadowFactor
	}
	return 1
}

func (s *PhongShader) channel(v uint8, k float64) uint8 {
	lit := float64(v) * k
	if !(lit >= 0) {
		lit = 0
	}
	return uint8(min(int(s.opts.ambient)+int(min(lit, 255)), 255))
}
