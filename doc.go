// Package soft3d is an offline software 3D renderer.
//
// # Overview
//
// soft3d turns triangulated meshes, per-vertex attributes and texture maps
// into a rasterized image on the CPU. A render is a plain synchronous
// function call that fills a [Texture] and a [DepthBuffer].
//
// # Quick Start
//
//	frame := soft3d.NewTexture(800, 800)
//	depth := soft3d.NewDepthBuffer(800, 800)
//
//	sh := shaders.NewPhongShader(modelView, projection, viewport, light,
//	    shaders.WithDiffuseMap(diffuse))
//	if err := sh.SetMesh(model); err != nil {
//	    return err
//	}
//	if err := sh.RunOnce(depth, frame); err != nil {
//	    return err
//	}
//
// # Architecture
//
// The library is organized into:
//   - linalg: fixed-size vectors and matrices, camera helpers
//   - soft3d: pixel and depth buffers, the [Shader] contract, the rasterizer
//   - shaders: the depth-only shadow pass and the Phong main pass
//   - internal/filter: ambient occlusion and supersampling
//   - tga, obj: texture and mesh loaders
//   - scene: scene files and the pass sequencing used by cmd/soft3d
//
// # Coordinate System
//
// The viewport maps clip space to pixels with y growing upwards, so a
// rendered frame has its origin at the bottom-left. Textures decoded from
// files have row 0 at the top; texture V coordinates are flipped at load
// time to match.
//
// Depth grows away from the camera. The depth buffer starts at +Inf and a
// fragment is kept only if it is strictly closer than what is stored.
package soft3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
