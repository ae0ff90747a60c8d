// Package linalg provides the small fixed-size vectors and matrices used by
// the soft3d pipeline.
//
// Every type is a plain array, generic over the scalar type, so values live
// on the stack and copy by assignment. The pipeline itself works in float64
// (the Vec3d/Mat4d aliases); float32 instantiations are available for
// callers that want to trade precision for memory.
package linalg

import "math"

// Float is the set of scalar types the vectors and matrices are defined over.
type Float interface {
	~float32 | ~float64
}

// Vec2 is a 2-component vector.
type Vec2[T Float] [2]T

// Vec3 is a 3-component vector.
type Vec3[T Float] [3]T

// Vec4 is a 4-component vector. Positions use w = 1, directions w = 0.
type Vec4[T Float] [4]T

// Double precision aliases used throughout the renderer.
type (
	Vec2d = Vec2[float64]
	Vec3d = Vec3[float64]
	Vec4d = Vec4[float64]
)

// Single precision aliases.
type (
	Vec2f = Vec2[float32]
	Vec3f = Vec3[float32]
	Vec4f = Vec4[float32]
)

func sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Add returns the sum of two vectors.
func (v Vec2[T]) Add(w Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] + w[0], v[1] + w[1]}
}

// Sub returns the difference of two vectors.
func (v Vec2[T]) Sub(w Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] - w[0], v[1] - w[1]}
}

// Mul returns the vector scaled by s.
func (v Vec2[T]) Mul(s T) Vec2[T] {
	return Vec2[T]{v[0] * s, v[1] * s}
}

// Div returns the vector divided by s.
func (v Vec2[T]) Div(s T) Vec2[T] {
	return Vec2[T]{v[0] / s, v[1] / s}
}

// Dot returns the dot product of two vectors.
func (v Vec2[T]) Dot(w Vec2[T]) T {
	return v[0]*w[0] + v[1]*w[1]
}

// Norm returns the Euclidean length of the vector.
func (v Vec2[T]) Norm() T {
	return sqrt(v.Dot(v))
}

// Normalize divides the vector by its norm. The zero vector yields NaN.
func (v Vec2[T]) Normalize() Vec2[T] {
	return v.Div(v.Norm())
}

// Embed lifts the vector to three components, filling z.
func (v Vec2[T]) Embed(z T) Vec3[T] {
	return Vec3[T]{v[0], v[1], z}
}

// Approx reports whether every component differs by less than eps.
func (v Vec2[T]) Approx(w Vec2[T], eps T) bool {
	return abs(v[0]-w[0]) < eps && abs(v[1]-w[1]) < eps
}

// Add returns the sum of two vectors.
func (v Vec3[T]) Add(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns the difference of two vectors.
func (v Vec3[T]) Sub(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Mul returns the vector scaled by s.
func (v Vec3[T]) Mul(s T) Vec3[T] {
	return Vec3[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Div returns the vector divided by s.
func (v Vec3[T]) Div(s T) Vec3[T] {
	return Vec3[T]{v[0] / s, v[1] / s, v[2] / s}
}

// Dot returns the dot product of two vectors.
func (v Vec3[T]) Dot(w Vec3[T]) T {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the cross product v × w.
func (v Vec3[T]) Cross(w Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vec3[T]) Norm() T {
	return sqrt(v.Dot(v))
}

// Normalize divides the vector by its norm. The zero vector yields NaN.
func (v Vec3[T]) Normalize() Vec3[T] {
	return v.Div(v.Norm())
}

// Embed lifts the vector to four components, filling w.
// Use 1 for positions and 0 for directions.
func (v Vec3[T]) Embed(w T) Vec4[T] {
	return Vec4[T]{v[0], v[1], v[2], w}
}

// Project2 drops the z component.
func (v Vec3[T]) Project2() Vec2[T] {
	return Vec2[T]{v[0], v[1]}
}

// Approx reports whether every component differs by less than eps.
func (v Vec3[T]) Approx(w Vec3[T], eps T) bool {
	return abs(v[0]-w[0]) < eps && abs(v[1]-w[1]) < eps && abs(v[2]-w[2]) < eps
}

// Add returns the sum of two vectors.
func (v Vec4[T]) Add(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Sub returns the difference of two vectors.
func (v Vec4[T]) Sub(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// Mul returns the vector scaled by s.
func (v Vec4[T]) Mul(s T) Vec4[T] {
	return Vec4[T]{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Div returns the vector divided by s.
func (v Vec4[T]) Div(s T) Vec4[T] {
	return Vec4[T]{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

// Dot returns the dot product of two vectors.
func (v Vec4[T]) Dot(w Vec4[T]) T {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3]
}

// Norm returns the Euclidean length of the vector, w included.
func (v Vec4[T]) Norm() T {
	return sqrt(v.Dot(v))
}

// Normalize divides the vector by its norm. The zero vector yields NaN.
func (v Vec4[T]) Normalize() Vec4[T] {
	return v.Div(v.Norm())
}

// Project3 drops the w component.
func (v Vec4[T]) Project3() Vec3[T] {
	return Vec3[T]{v[0], v[1], v[2]}
}

// Project2 keeps only x and y.
func (v Vec4[T]) Project2() Vec2[T] {
	return Vec2[T]{v[0], v[1]}
}

// Approx reports whether every component differs by less than eps.
func (v Vec4[T]) Approx(w Vec4[T], eps T) bool {
	return abs(v[0]-w[0]) < eps && abs(v[1]-w[1]) < eps &&
		abs(v[2]-w[2]) < eps && abs(v[3]-w[3]) < eps
}
