package linalg

import "errors"

// ErrSingular is returned by TryInverse when the determinant is zero.
var ErrSingular = errors.New("linalg: singular matrix")

// Mat1 is a 1×1 matrix. It completes the square family so Det and Inverse
// hold for every size from 1 to 4.
type Mat1[T Float] [1][1]T

// Mat2 is a 2×2 matrix stored as two row vectors.
type Mat2[T Float] [2]Vec2[T]

// Mat3 is a 3×3 matrix stored as three row vectors.
type Mat3[T Float] [3]Vec3[T]

// Mat4 is a 4×4 matrix stored as four row vectors.
type Mat4[T Float] [4]Vec4[T]

// Mat2x3 has two rows of three columns. The rasterizer's per-triangle UV
// table is one: column j holds the texture coordinate of vertex j.
type Mat2x3[T Float] [2]Vec3[T]

// Mat3x2 has three rows of two columns. It is the transpose of a Mat2x3.
type Mat3x2[T Float] [3]Vec2[T]

// Double precision aliases used throughout the renderer.
type (
	Mat1d   = Mat1[float64]
	Mat2d   = Mat2[float64]
	Mat3d   = Mat3[float64]
	Mat4d   = Mat4[float64]
	Mat2x3d = Mat2x3[float64]
	Mat3x2d = Mat3x2[float64]
)

// Identity1 returns the 1×1 identity matrix.
func Identity1[T Float]() Mat1[T] {
	return Mat1[T]{{1}}
}

// Identity2 returns the 2×2 identity matrix.
func Identity2[T Float]() Mat2[T] {
	return Mat2[T]{{1, 0}, {0, 1}}
}

// Identity3 returns the 3×3 identity matrix.
func Identity3[T Float]() Mat3[T] {
	return Mat3[T]{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Identity4 returns the 4×4 identity matrix.
func Identity4[T Float]() Mat4[T] {
	return Mat4[T]{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Add returns the element-wise sum m + o.
func (m Mat4[T]) Add(o Mat4[T]) Mat4[T] {
	for i := range m {
		m[i] = m[i].Add(o[i])
	}
	return m
}

// Sub returns the element-wise difference m - o.
func (m Mat4[T]) Sub(o Mat4[T]) Mat4[T] {
	for i := range m {
		m[i] = m[i].Sub(o[i])
	}
	return m
}

// Mul returns the matrix product m · o.
func (m Mat4[T]) Mul(o Mat4[T]) Mat4[T] {
	var out Mat4[T]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum T
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulVec returns the product m · v.
func (m Mat4[T]) MulVec(v Vec4[T]) Vec4[T] {
	return Vec4[T]{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v), m[3].Dot(v)}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat4[T]) Scale(s T) Mat4[T] {
	for i := range m {
		m[i] = m[i].Mul(s)
	}
	return m
}

// Div returns the matrix with every element divided by s.
func (m Mat4[T]) Div(s T) Mat4[T] {
	for i := range m {
		m[i] = m[i].Div(s)
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Mat4[T]) Transpose() Mat4[T] {
	var out Mat4[T]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Col returns column j.
func (m Mat4[T]) Col(j int) Vec4[T] {
	return Vec4[T]{m[0][j], m[1][j], m[2][j], m[3][j]}
}

// SetCol overwrites column j with v.
func (m *Mat4[T]) SetCol(j int, v Vec4[T]) {
	for i := 0; i < 4; i++ {
		m[i][j] = v[i]
	}
}

// Minor returns m with row i and column j removed.
func (m Mat4[T]) Minor(i, j int) Mat3[T] {
	s := m.square()
	minor := s.minor(i, j)
	return minor.mat3()
}

// Cofactor returns (-1)^(i+j) · det(Minor(i, j)).
func (m Mat4[T]) Cofactor(i, j int) T {
	s := m.square()
	return s.cofactor(i, j)
}

// Det returns the determinant by cofactor expansion along row 0.
func (m Mat4[T]) Det() T {
	s := m.square()
	return s.det()
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Mat4[T]) Adjugate() Mat4[T] {
	s := m.square()
	adj := s.adjugate()
	return adj.mat4()
}

// Inverse returns Adjugate() / Det(). A singular matrix is not detected and
// produces Inf or NaN elements; use TryInverse to check first.
func (m Mat4[T]) Inverse() Mat4[T] {
	s := m.square()
	inv := s.inverse()
	return inv.mat4()
}

// TryInverse is Inverse with a zero-determinant check.
func (m Mat4[T]) TryInverse() (Mat4[T], error) {
	// NaN determinants come from non-finite input and fail the same way
	if d := m.Det(); d == 0 || d != d {
		return Mat4[T]{}, ErrSingular
	}
	return m.Inverse(), nil
}

// Approx reports whether every element differs by less than eps.
func (m Mat4[T]) Approx(o Mat4[T], eps T) bool {
	for i := range m {
		if !m[i].Approx(o[i], eps) {
			return false
		}
	}
	return true
}

// Add returns the element-wise sum m + o.
func (m Mat3[T]) Add(o Mat3[T]) Mat3[T] {
	for i := range m {
		m[i] = m[i].Add(o[i])
	}
	return m
}

// Sub returns the element-wise difference m - o.
func (m Mat3[T]) Sub(o Mat3[T]) Mat3[T] {
	for i := range m {
		m[i] = m[i].Sub(o[i])
	}
	return m
}

// Mul returns the matrix product m · o.
func (m Mat3[T]) Mul(o Mat3[T]) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum T
			for k := 0; k < 3; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulVec returns the product m · v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat3[T]) Scale(s T) Mat3[T] {
	for i := range m {
		m[i] = m[i].Mul(s)
	}
	return m
}

// Div returns the matrix with every element divided by s.
func (m Mat3[T]) Div(s T) Mat3[T] {
	for i := range m {
		m[i] = m[i].Div(s)
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Mat3[T]) Transpose() Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Col returns column j.
func (m Mat3[T]) Col(j int) Vec3[T] {
	return Vec3[T]{m[0][j], m[1][j], m[2][j]}
}

// SetCol overwrites column j with v.
func (m *Mat3[T]) SetCol(j int, v Vec3[T]) {
	for i := 0; i < 3; i++ {
		m[i][j] = v[i]
	}
}

// Minor returns m with row i and column j removed.
func (m Mat3[T]) Minor(i, j int) Mat2[T] {
	s := m.square()
	minor := s.minor(i, j)
	return minor.mat2()
}

// Cofactor returns (-1)^(i+j) · det(Minor(i, j)).
func (m Mat3[T]) Cofactor(i, j int) T {
	s := m.square()
	return s.cofactor(i, j)
}

// Det returns the determinant by cofactor expansion along row 0.
func (m Mat3[T]) Det() T {
	s := m.square()
	return s.det()
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Mat3[T]) Adjugate() Mat3[T] {
	s := m.square()
	adj := s.adjugate()
	return adj.mat3()
}

// Inverse returns the adjugate divided by the determinant, unchecked.
func (m Mat3[T]) Inverse() Mat3[T] {
	s := m.square()
	inv := s.inverse()
	return inv.mat3()
}

// Approx reports whether every element differs by less than eps.
func (m Mat3[T]) Approx(o Mat3[T], eps T) bool {
	for i := range m {
		if !m[i].Approx(o[i], eps) {
			return false
		}
	}
	return true
}

// Add returns the element-wise sum m + o.
func (m Mat2[T]) Add(o Mat2[T]) Mat2[T] {
	return Mat2[T]{m[0].Add(o[0]), m[1].Add(o[1])}
}

// Sub returns the element-wise difference m - o.
func (m Mat2[T]) Sub(o Mat2[T]) Mat2[T] {
	return Mat2[T]{m[0].Sub(o[0]), m[1].Sub(o[1])}
}

// Mul returns the matrix product m · o.
func (m Mat2[T]) Mul(o Mat2[T]) Mat2[T] {
	var out Mat2[T]
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return out
}

// MulVec returns the product m · v.
func (m Mat2[T]) MulVec(v Vec2[T]) Vec2[T] {
	return Vec2[T]{m[0].Dot(v), m[1].Dot(v)}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat2[T]) Scale(s T) Mat2[T] {
	return Mat2[T]{m[0].Mul(s), m[1].Mul(s)}
}

// Div returns the matrix with every element divided by s.
func (m Mat2[T]) Div(s T) Mat2[T] {
	return Mat2[T]{m[0].Div(s), m[1].Div(s)}
}

// Transpose returns the transposed matrix.
func (m Mat2[T]) Transpose() Mat2[T] {
	return Mat2[T]{m.Col(0), m.Col(1)}
}

// Col returns column j.
func (m Mat2[T]) Col(j int) Vec2[T] {
	return Vec2[T]{m[0][j], m[1][j]}
}

// SetCol overwrites column j with v.
func (m *Mat2[T]) SetCol(j int, v Vec2[T]) {
	m[0][j] = v[0]
	m[1][j] = v[1]
}

// Minor returns m with row i and column j removed.
func (m Mat2[T]) Minor(i, j int) Mat1[T] {
	s := m.square()
	minor := s.minor(i, j)
	return minor.mat1()
}

// Cofactor returns (-1)^(i+j) · det(Minor(i, j)).
func (m Mat2[T]) Cofactor(i, j int) T {
	s := m.square()
	return s.cofactor(i, j)
}

// Det returns the determinant by cofactor expansion along row 0.
func (m Mat2[T]) Det() T {
	s := m.square()
	return s.det()
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Mat2[T]) Adjugate() Mat2[T] {
	s := m.square()
	adj := s.adjugate()
	return adj.mat2()
}

// Inverse returns the adjugate divided by the determinant, unchecked.
func (m Mat2[T]) Inverse() Mat2[T] {
	s := m.square()
	inv := s.inverse()
	return inv.mat2()
}

// Approx reports whether every element differs by less than eps.
func (m Mat2[T]) Approx(o Mat2[T], eps T) bool {
	return m[0].Approx(o[0], eps) && m[1].Approx(o[1], eps)
}

// Add returns the element-wise sum m + o.
func (m Mat1[T]) Add(o Mat1[T]) Mat1[T] {
	return Mat1[T]{{m[0][0] + o[0][0]}}
}

// Sub returns the element-wise difference m - o.
func (m Mat1[T]) Sub(o Mat1[T]) Mat1[T] {
	return Mat1[T]{{m[0][0] - o[0][0]}}
}

// Mul returns the matrix product m · o.
func (m Mat1[T]) Mul(o Mat1[T]) Mat1[T] {
	return Mat1[T]{{m[0][0] * o[0][0]}}
}

// Scale returns the matrix with its element multiplied by s.
func (m Mat1[T]) Scale(s T) Mat1[T] {
	return Mat1[T]{{m[0][0] * s}}
}

// Div returns the matrix with its element divided by s.
func (m Mat1[T]) Div(s T) Mat1[T] {
	return Mat1[T]{{m[0][0] / s}}
}

// Transpose returns m.
func (m Mat1[T]) Transpose() Mat1[T] { return m }

// Cofactor returns the cofactor of the only element, which is 1.
func (m Mat1[T]) Cofactor(i, j int) T {
	s := m.square()
	return s.cofactor(i, j)
}

// Det returns the only element.
func (m Mat1[T]) Det() T {
	s := m.square()
	return s.det()
}

// Adjugate returns [1].
func (m Mat1[T]) Adjugate() Mat1[T] {
	s := m.square()
	adj := s.adjugate()
	return adj.mat1()
}

// Inverse returns [1/m], unchecked.
func (m Mat1[T]) Inverse() Mat1[T] {
	s := m.square()
	inv := s.inverse()
	return inv.mat1()
}

// Approx reports whether the elements differ by less than eps.
func (m Mat1[T]) Approx(o Mat1[T], eps T) bool {
	return abs(m[0][0]-o[0][0]) < eps
}

// Add returns the element-wise sum m + o.
func (m Mat2x3[T]) Add(o Mat2x3[T]) Mat2x3[T] {
	return Mat2x3[T]{m[0].Add(o[0]), m[1].Add(o[1])}
}

// Sub returns the element-wise difference m - o.
func (m Mat2x3[T]) Sub(o Mat2x3[T]) Mat2x3[T] {
	return Mat2x3[T]{m[0].Sub(o[0]), m[1].Sub(o[1])}
}

// Mul returns the matrix product m · o.
func (m Mat2x3[T]) Mul(o Mat3[T]) Mat2x3[T] {
	var out Mat2x3[T]
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			var sum T
			for k := 0; k < 3; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat2x3[T]) Scale(s T) Mat2x3[T] {
	return Mat2x3[T]{m[0].Mul(s), m[1].Mul(s)}
}

// Div returns the matrix with every element divided by s.
func (m Mat2x3[T]) Div(s T) Mat2x3[T] {
	return Mat2x3[T]{m[0].Div(s), m[1].Div(s)}
}

// Transpose returns the 3×2 transpose.
func (m Mat2x3[T]) Transpose() Mat3x2[T] {
	return Mat3x2[T]{m.Col(0), m.Col(1), m.Col(2)}
}

// Col returns column j as a 2-vector.
func (m Mat2x3[T]) Col(j int) Vec2[T] {
	return Vec2[T]{m[0][j], m[1][j]}
}

// SetCol overwrites column j with v.
func (m *Mat2x3[T]) SetCol(j int, v Vec2[T]) {
	m[0][j] = v[0]
	m[1][j] = v[1]
}

// MulVec returns the product m · v.
func (m Mat2x3[T]) MulVec(v Vec3[T]) Vec2[T] {
	return Vec2[T]{m[0].Dot(v), m[1].Dot(v)}
}

// Approx reports whether every element differs by less than eps.
func (m Mat2x3[T]) Approx(o Mat2x3[T], eps T) bool {
	return m[0].Approx(o[0], eps) && m[1].Approx(o[1], eps)
}

// Col returns column j.
func (m Mat3x2[T]) Col(j int) Vec3[T] {
	return Vec3[T]{m[0][j], m[1][j], m[2][j]}
}

// SetCol overwrites column j with v.
func (m *Mat3x2[T]) SetCol(j int, v Vec3[T]) {
	for i := 0; i < 3; i++ {
		m[i][j] = v[i]
	}
}

// MulVec returns the product m · v.
func (m Mat3x2[T]) MulVec(v Vec2[T]) Vec3[T] {
	return Vec3[T]{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

// Transpose returns the 2×3 transpose.
func (m Mat3x2[T]) Transpose() Mat2x3[T] {
	return Mat2x3[T]{m.Col(0), m.Col(1)}
}
