package soft3d

import "github.com/gogpu/soft3d/linalg"

// Mesh is the geometry a shader reads from. Faces are triangles and slot
// selects one of the three corners. Implementations must keep indices in
// range for every face below FaceCount.
type Mesh interface {
	FaceCount() int
	Position(face, slot int) linalg.Vec3d
	UV(face, slot int) linalg.Vec2d
	Normal(face, slot int) linalg.Vec3d
}

// Shader is the programmable part of a render pass.
//
// Vertex is called once per corner, in slot order 0, 1, 2, before any
// Fragment call for that face. It returns the corner in homogeneous clip
// space and may record per-vertex varyings. Fragment receives
// perspective-correct barycentric weights over the face most recently
// passed to Vertex. It may overwrite color; returning false discards the
// fragment. RunOnce draws every face of the bound mesh, usually through
// [DrawMesh].
type Shader interface {
	ModelView() linalg.Mat4d
	Projection() linalg.Mat4d
	Viewport() linalg.Mat4d
	Vertex(face, slot int) linalg.Vec4d
	Fragment(bar linalg.Vec3d, color *Color) (bool, error)
	RunOnce(depth *DepthBuffer, frame *Texture) error
}
