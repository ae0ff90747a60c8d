package linalg

import (
	"math"
	"testing"
)

func TestLookAt(t *testing.T) {
	eye := Vec3d{1, 1, 3}
	center := Vec3d{0, 0, 0}
	mv := LookAt(eye, center, Vec3d{0, 1, 0})

	if got := mv.MulVec(eye.Embed(1)); !got.Approx(Vec4d{0, 0, 0, 1}, 1e-12) {
		t.Errorf("eye maps to %v, want origin", got)
	}

	dist := center.Sub(eye).Norm()
	got := mv.MulVec(center.Embed(1))
	if !got.Approx(Vec4d{0, 0, dist, 1}, 1e-12) {
		t.Errorf("center maps to %v, want (0, 0, %v, 1)", got, dist)
	}

	// rotation part stays orthonormal
	r := mv
	r[0][3], r[1][3], r[2][3] = 0, 0, 0
	if !r.Mul(r.Transpose()).Approx(Identity4[float64](), 1e-12) {
		t.Error("LookAt rotation is not orthonormal")
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport(100, 50, 800, 600)
	tests := []struct {
		in, want Vec4d
	}{
		{Vec4d{-1, -1, 0.5, 1}, Vec4d{100, 50, 0.5, 1}},
		{Vec4d{1, 1, 0.5, 1}, Vec4d{900, 650, 0.5, 1}},
		{Vec4d{0, 0, 0, 1}, Vec4d{500, 350, 0, 1}},
	}
	for _, tt := range tests {
		if got := vp.MulVec(tt.in); !got.Approx(tt.want, 1e-12) {
			t.Errorf("Viewport·%v = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPinhole(t *testing.T) {
	p := Pinhole(2)
	got := p.MulVec(Vec4d{1, 1, 4, 1})
	if math.Abs(got[3]-3) > 1e-12 {
		t.Errorf("w = %v, want 3", got[3])
	}
	if got[0] != 1 || got[1] != 1 || got[2] != 4 {
		t.Errorf("xyz changed: %v", got)
	}
}
