package linalg

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3d{1, 2, 3}
	b := Vec3d{4, -5, 6}

	tests := []struct {
		name string
		got  Vec3d
		want Vec3d
	}{
		{"add", a.Add(b), Vec3d{5, -3, 9}},
		{"sub", a.Sub(b), Vec3d{-3, 7, -3}},
		{"mul", a.Mul(2), Vec3d{2, 4, 6}},
		{"div", a.Div(2), Vec3d{0.5, 1, 1.5}},
		{"cross", a.Cross(b), Vec3d{27, 6, -13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Approx(tt.want, 1e-12) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
}

func TestCross_Orthogonal(t *testing.T) {
	a := Vec3d{0.3, -1.2, 2.5}
	b := Vec3d{-4, 0.5, 1}
	c := a.Cross(b)
	if d := c.Dot(a); math.Abs(d) > 1e-12 {
		t.Errorf("(a×b)·a = %v, want 0", d)
	}
	if d := c.Dot(b); math.Abs(d) > 1e-12 {
		t.Errorf("(a×b)·b = %v, want 0", d)
	}
}

func TestNormalize_UnitNorm(t *testing.T) {
	vecs := []Vec4d{
		{1, 0, 0, 0},
		{3, 4, 0, 0},
		{-1e-3, 2e-3, 5e-4, 1e-3},
		{1e6, -2e6, 3e6, 4e6},
		{0.1, 0.2, 0.3, 0.4},
	}
	for _, v := range vecs {
		n := v.Normalize().Norm()
		if math.Abs(n-1) > 1e-12 {
			t.Errorf("norm(normalize(%v)) = %v, want 1", v, n)
		}
		n3 := v.Project3().Normalize().Norm()
		if math.Abs(n3-1) > 1e-12 {
			t.Errorf("norm(normalize(%v)) = %v, want 1", v.Project3(), n3)
		}
	}
}

func TestNormalize_ZeroIsNaN(t *testing.T) {
	v := Vec3d{}.Normalize()
	for i, c := range v {
		if !math.IsNaN(c) {
			t.Errorf("component %d = %v, want NaN", i, c)
		}
	}
}

func TestNormalize_Float32(t *testing.T) {
	v := Vec3f{3, 4, 12}.Normalize()
	if n := v.Norm(); n < 0.99999 || n > 1.00001 {
		t.Errorf("float32 norm = %v, want 1", n)
	}
}

func TestEmbedProject(t *testing.T) {
	p := Vec3d{1, 2, 3}
	if got := p.Embed(1); got != (Vec4d{1, 2, 3, 1}) {
		t.Errorf("Embed(1) = %v", got)
	}
	if got := p.Embed(0).Project3(); got != p {
		t.Errorf("Embed(0).Project3() = %v, want %v", got, p)
	}
	if got := p.Project2(); got != (Vec2d{1, 2}) {
		t.Errorf("Project2() = %v", got)
	}
	if got := (Vec2d{5, 6}).Embed(7); got != (Vec3d{5, 6, 7}) {
		t.Errorf("Vec2.Embed = %v", got)
	}
	if got := (Vec4d{1, 2, 3, 4}).Project2(); got != (Vec2d{1, 2}) {
		t.Errorf("Vec4.Project2 = %v", got)
	}
}
