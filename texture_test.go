package soft3d

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/soft3d/linalg"
)

func TestNewTexture(t *testing.T) {
	tex := NewTexture(3, 2)
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width(), tex.Height())
	}
	for i, c := range tex.Pix() {
		if c != (Color{}) {
			t.Fatalf("pixel %d = %v, want zero", i, c)
		}
	}
	if empty := NewTexture(-1, 5); empty.Width() != 0 || len(empty.Pix()) != 0 {
		t.Errorf("negative size should produce an empty texture")
	}
}

func TestTextureColorBounds(t *testing.T) {
	tex := NewTexture(4, 3)
	if err := tex.SetColor(3, 2, White); err != nil {
		t.Fatalf("SetColor in bounds: %v", err)
	}
	if c, err := tex.Color(3, 2); err != nil || c != White {
		t.Errorf("Color(3, 2) = %v, %v; want white", c, err)
	}
	// x + y*w equals a valid index but x is out of range
	if _, err := tex.Color(4, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Color(4, 0) error = %v, want ErrOutOfBounds", err)
	}

	oob := []struct{ x, y int }{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}}
	for _, p := range oob {
		if err := tex.SetColor(p.x, p.y, White); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetColor(%d, %d) error = %v, want ErrOutOfBounds", p.x, p.y, err)
		}
	}
}

func TestTextureFlip(t *testing.T) {
	tex := NewTexture(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			_ = tex.SetColor(x, y, RGB(uint8(x), uint8(y), 0))
		}
	}

	h := tex.Clone()
	h.FlipHorizontally()
	if c, _ := h.Color(0, 1); c != RGB(2, 1, 0) {
		t.Errorf("after horizontal flip (0, 1) = %v", c)
	}

	v := tex.Clone()
	v.FlipVertically()
	if c, _ := v.Color(2, 0); c != RGB(2, 1, 0) {
		t.Errorf("after vertical flip (2, 0) = %v", c)
	}

	v.FlipVertically()
	for i := range tex.Pix() {
		if v.Pix()[i] != tex.Pix()[i] {
			t.Fatal("flipping twice should restore the texture")
		}
	}
}

func TestTextureSample(t *testing.T) {
	tex := NewTexture(4, 2)
	_ = tex.SetColor(0, 0, RGB(1, 0, 0))
	_ = tex.SetColor(3, 1, RGB(2, 0, 0))
	_ = tex.SetColor(2, 1, RGB(3, 0, 0))

	tests := []struct {
		uv   linalg.Vec2d
		want Color
		err  error
	}{
		{linalg.Vec2d{0, 0}, RGB(1, 0, 0), nil},
		{linalg.Vec2d{0.99, 0.99}, RGB(2, 0, 0), nil},
		{linalg.Vec2d{0.5, 0.5}, RGB(3, 0, 0), nil},
		{linalg.Vec2d{1, 0}, Color{}, ErrOutOfBounds},
		{linalg.Vec2d{0, 1}, Color{}, ErrOutOfBounds},
		{linalg.Vec2d{-0.1, 0}, Color{}, ErrOutOfBounds},
		{linalg.Vec2d{math.NaN(), 0}, Color{}, ErrOutOfBounds},
	}
	for _, tt := range tests {
		got, err := tex.Sample(tt.uv)
		if !errors.Is(err, tt.err) {
			t.Errorf("Sample(%v) error = %v, want %v", tt.uv, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}

func TestTextureImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	src.SetNRGBA(0, 1, color.NRGBA{R: 50, G: 60, B: 70, A: 255})

	tex := FromImage(src)
	if c, _ := tex.Color(1, 0); c != (Color{10, 20, 30, 40}) {
		t.Errorf("FromImage (1, 0) = %v", c)
	}

	out := tex.ToImage()
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("ToImage byte %d = %d, want %d", i, out.Pix[i], src.Pix[i])
		}
	}

	var _ image.Image = tex
	if got := tex.At(0, 1); got != (color.NRGBA{R: 50, G: 60, B: 70, A: 255}) {
		t.Errorf("At(0, 1) = %v", got)
	}
	if tex.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() = %v", tex.Bounds())
	}
}

func TestFromImageGeneric(t *testing.T) {
	src := image.NewGray(image.Rect(2, 3, 4, 5))
	src.SetGray(3, 4, color.Gray{Y: 128})
	tex := FromImage(src)
	if c, _ := tex.Color(1, 1); c != RGB(128, 128, 128) {
		t.Errorf("FromImage gray (1, 1) = %v, want 128 gray", c)
	}
}
