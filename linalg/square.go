package linalg

// square is an n×n matrix (n <= 4) on a fixed backing array. Determinant,
// cofactor and inverse for every square size go through it, so 1×1 to 4×4
// share one Laplace expansion and nothing escapes to the heap.
type square[T Float] struct {
	a [4][4]T
	n int
}

func (m Mat1[T]) square() square[T] {
	return square[T]{a: [4][4]T{{m[0][0]}}, n: 1}
}

func (m Mat2[T]) square() square[T] {
	s := square[T]{n: 2}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			s.a[i][j] = m[i][j]
		}
	}
	return s
}

func (m Mat3[T]) square() square[T] {
	s := square[T]{n: 3}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.a[i][j] = m[i][j]
		}
	}
	return s
}

func (m Mat4[T]) square() square[T] {
	return square[T]{a: [4][4]T{[4]T(m[0]), [4]T(m[1]), [4]T(m[2]), [4]T(m[3])}, n: 4}
}

func (s *square[T]) mat1() Mat1[T] {
	return Mat1[T]{{s.a[0][0]}}
}

func (s *square[T]) mat2() Mat2[T] {
	return Mat2[T]{{s.a[0][0], s.a[0][1]}, {s.a[1][0], s.a[1][1]}}
}

func (s *square[T]) mat3() Mat3[T] {
	var m Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = s.a[i][j]
		}
	}
	return m
}

func (s *square[T]) mat4() Mat4[T] {
	return Mat4[T]{Vec4[T](s.a[0]), Vec4[T](s.a[1]), Vec4[T](s.a[2]), Vec4[T](s.a[3])}
}

// minor drops row i and column j.
func (s *square[T]) minor(i, j int) square[T] {
	m := square[T]{n: s.n - 1}
	for r := 0; r < m.n; r++ {
		sr := r
		if r >= i {
			sr++
		}
		for c := 0; c < m.n; c++ {
			sc := c
			if c >= j {
				sc++
			}
			m.a[r][c] = s.a[sr][sc]
		}
	}
	return m
}

func (s *square[T]) cofactor(i, j int) T {
	m := s.minor(i, j)
	d := m.det()
	if (i+j)&1 == 1 {
		return -d
	}
	return d
}

// det expands along row 0. The empty matrix has determinant 1, which makes
// the 1×1 adjugate come out as [1].
func (s *square[T]) det() T {
	switch s.n {
	case 0:
		return 1
	case 1:
		return s.a[0][0]
	}
	var d T
	for j := 0; j < s.n; j++ {
		d += s.a[0][j] * s.cofactor(0, j)
	}
	return d
}

func (s *square[T]) adjugate() square[T] {
	adj := square[T]{n: s.n}
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.n; j++ {
			adj.a[j][i] = s.cofactor(i, j)
		}
	}
	return adj
}

func (s *square[T]) inverse() square[T] {
	d := s.det()
	inv := s.adjugate()
	for i := 0; i < inv.n; i++ {
		for j := 0; j < inv.n; j++ {
			inv.a[i][j] /= d
		}
	}
	return inv
}
