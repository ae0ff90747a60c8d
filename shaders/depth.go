// Package shaders provides the two render passes of soft3d: a depth-only
// pass used to build shadow maps and a Phong pass with tangent-space normal
// mapping, specular maps and shadow lookups.
package shaders

import (
	"errors"
	"fmt"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/linalg"
)

// Shader errors.
var (
	// ErrNoMesh is returned by RunOnce when no mesh has been bound.
	ErrNoMesh = errors.New("shaders: no mesh bound")

	// ErrMissingAttribute is returned when a mesh lacks texture
	// coordinates or normals required by the shader.
	ErrMissingAttribute = errors.New("shaders: mesh is missing a vertex attribute")
)

// AttributeMesh is implemented by meshes that can report whether every
// face carries texture coordinates and normals.
type AttributeMesh interface {
	soft3d.Mesh
	HasUV() bool
	HasNormals() bool
}

// DepthShader renders positions only. It is used from the light's point of
// view to fill a shadow map.
type DepthShader struct {
	modelView  linalg.Mat4d
	projection linalg.Mat4d
	viewport   linalg.Mat4d
	mvp        linalg.Mat4d
	mesh       soft3d.Mesh
}

var _ soft3d.Shader = (*DepthShader)(nil)

// NewDepthShader creates a depth-only shader.
func NewDepthShader(modelView, projection, viewport linalg.Mat4d) *DepthShader {
	return &DepthShader{
		modelView:  modelView,
		projection: projection,
		viewport:   viewport,
		mvp:        projection.Mul(modelView),
	}
}

// SetMesh binds the mesh drawn by RunOnce.
func (s *DepthShader) SetMesh(m soft3d.Mesh) {
	s.mesh = m
}

// ModelView implements soft3d.Shader.
func (s *DepthShader) ModelView() linalg.Mat4d { return s.modelView }

// Projection implements soft3d.Shader.
func (s *DepthShader) Projection() linalg.Mat4d { return s.projection }

// Viewport implements soft3d.Shader.
func (s *DepthShader) Viewport() linalg.Mat4d { return s.viewport }

// Vertex implements soft3d.Shader.
func (s *DepthShader) Vertex(face, slot int) linalg.Vec4d {
	return s.mvp.MulVec(s.mesh.Position(face, slot).Embed(1))
}

// Fragment keeps every fragment and leaves the color alone.
func (s *DepthShader) Fragment(linalg.Vec3d, *soft3d.Color) (bool, error) {
	return true, nil
}

// RunOnce draws the bound mesh into depth. frame is ignored; only depth is
// written.
func (s *DepthShader) RunOnce(depth *soft3d.DepthBuffer, _ *soft3d.Texture) error {
	if s.mesh == nil {
		return ErrNoMesh
	}
	if _, err := soft3d.DrawMesh(s, s.mesh.FaceCount(), depth, nil); err != nil {
		return fmt.Errorf("shaders: depth pass: %w", err)
	}
	return nil
}

// ShadowMatrix returns the transform from camera view space to shadow map
// pixels: viewportL · projectionL · modelViewL · inverse(modelViewCam).
func ShadowMatrix(viewportL, projectionL, modelViewL, modelViewCam linalg.Mat4d) linalg.Mat4d {
	return viewportL.Mul(projectionL).Mul(modelViewL).Mul(modelViewCam.Inverse())
}
