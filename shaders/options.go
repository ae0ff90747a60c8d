package shaders

import (
	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/linalg"
)

// Default lighting constants.
const (
	DefaultAmbient      = 20
	DefaultShadowFactor = 0.4
	DefaultShadowBias   = 0.1
)

// Option configures a PhongShader during creation.
//
// Example:
//
//	sh := shaders.NewPhongShader(mv, proj, vp, light,
//	    shaders.WithDiffuseMap(diffuse),
//	    shaders.WithShadowMap(shadowDepth, shadowMatrix))
type Option func(*phongOptions)

// phongOptions holds optional configuration for PhongShader creation.
type phongOptions struct {
	normalMap    *soft3d.Texture
	diffuseMap   *soft3d.Texture
	specularMap  *soft3d.Texture
	shadowDepth  *soft3d.DepthBuffer
	shadowMatrix linalg.Mat4d
	ambient      uint8
	shadowFactor float64
	shadowBias   float64
}

// defaultOptions returns the default shader options.
func defaultOptions() phongOptions {
	return phongOptions{
		ambient:      DefaultAmbient,
		shadowFactor: DefaultShadowFactor,
		shadowBias:   DefaultShadowBias,
	}
}

// WithNormalMap binds a tangent-space normal map.
func WithNormalMap(t *soft3d.Texture) Option {
	return func(o *phongOptions) {
		o.normalMap = t
	}
}

// WithDiffuseMap binds the base color texture.
// Without one, surfaces are white.
func WithDiffuseMap(t *soft3d.Texture) Option {
	return func(o *phongOptions) {
		o.diffuseMap = t
	}
}

// WithSpecularMap binds a specular map. The blue channel is added to the
// base exponent of 5.
func WithSpecularMap(t *soft3d.Texture) Option {
	return func(o *phongOptions) {
		o.specularMap = t
	}
}

// WithShadowMap binds a depth buffer rendered from the light together with
// the matrix from camera view space to that buffer's pixels (see
// [ShadowMatrix]).
func WithShadowMap(depth *soft3d.DepthBuffer, m linalg.Mat4d) Option {
	return func(o *phongOptions) {
		o.shadowDepth = depth
		o.shadowMatrix = m
	}
}

// WithAmbient sets the constant added to every color channel.
func WithAmbient(a uint8) Option {
	return func(o *phongOptions) {
		o.ambient = a
	}
}

// WithShadowFactor sets the multiplier applied to shadowed fragments.
func WithShadowFactor(f float64) Option {
	return func(o *phongOptions) {
		o.shadowFactor = f
	}
}

// WithShadowBias sets how much deeper than the shadow map a fragment must
// be before it counts as occluded.
func WithShadowBias(b float64) Option {
	return func(o *phongOptions) {
		o.shadowBias = b
	}
}
