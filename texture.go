package soft3d

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/soft3d/linalg"
)

// Buffer errors.
var (
	// ErrOutOfBounds is returned when pixel coordinates are outside the buffer.
	ErrOutOfBounds = errors.New("soft3d: coordinates out of bounds")

	// ErrInvalidDimensions is returned when buffer sizes are negative or
	// do not match each other.
	ErrInvalidDimensions = errors.New("soft3d: invalid dimensions")
)

// Texture is a width×height pixel buffer in row-major order.
// It serves both as a texture map and as a render target.
//
// A Texture is not safe for concurrent mutation.
type Texture struct {
	width  int
	height int
	data   []Color
}

// NewTexture creates a zeroed (transparent black) texture.
func NewTexture(width, height int) *Texture {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Texture{
		width:  width,
		height: height,
		data:   make([]Color, width*height),
	}
}

// Width returns the width of the texture.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the texture.
func (t *Texture) Height() int {
	return t.height
}

// Pix returns the pixel slice, indexed by x + y*Width().
func (t *Texture) Pix() []Color {
	return t.data
}

func (t *Texture) inBounds(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// Color returns the pixel at (x, y).
func (t *Texture) Color(x, y int) (Color, error) {
	if !t.inBounds(x, y) {
		return Color{}, ErrOutOfBounds
	}
	return t.data[x+y*t.width], nil
}

// SetColor sets the pixel at (x, y).
func (t *Texture) SetColor(x, y int, c Color) error {
	if !t.inBounds(x, y) {
		return ErrOutOfBounds
	}
	t.data[x+y*t.width] = c
	return nil
}

// Fill sets every pixel to c.
func (t *Texture) Fill(c Color) {
	for i := range t.data {
		t.data[i] = c
	}
}

// Sample returns the texel under the normalized coordinate uv, where (0, 0)
// is the first texel and 1 is one past the last. Coordinates outside [0, 1)
// return ErrOutOfBounds.
func (t *Texture) Sample(uv linalg.Vec2d) (Color, error) {
	fx := math.Floor(uv[0] * float64(t.width))
	fy := math.Floor(uv[1] * float64(t.height))
	// rejects NaN as well
	if !(fx >= 0 && fx < float64(t.width) && fy >= 0 && fy < float64(t.height)) {
		return Color{}, ErrOutOfBounds
	}
	return t.data[int(fx)+int(fy)*t.width], nil
}

// FlipHorizontally mirrors the texture around its vertical axis.
func (t *Texture) FlipHorizontally() {
	for y := 0; y < t.height; y++ {
		row := t.data[y*t.width : (y+1)*t.width]
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// FlipVertically mirrors the texture around its horizontal axis.
func (t *Texture) FlipVertically() {
	for top, bottom := 0, t.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := t.data[top*t.width : (top+1)*t.width]
		b := t.data[bottom*t.width : (bottom+1)*t.width]
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
}

// Clone returns a deep copy.
func (t *Texture) Clone() *Texture {
	c := &Texture{width: t.width, height: t.height, data: make([]Color, len(t.data))}
	copy(c.data, t.data)
	return c
}

// ToImage converts the texture to an image.NRGBA with row 0 on top.
func (t *Texture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for i, c := range t.data {
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

// FromImage creates a texture from an image. Row 0 of the texture is the
// top row of the image.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < t.height; y++ {
			row := nrgba.Pix[(y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			for x := 0; x < t.width; x++ {
				o := (x + bounds.Min.X - nrgba.Rect.Min.X) * 4
				t.data[x+y*t.width] = Color{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
			}
		}
		return t
	}

	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.data[x+y*t.width] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return t
}

// At implements the image.Image interface.
func (t *Texture) At(x, y int) color.Color {
	c, err := t.Color(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return c.NRGBA()
}

// Bounds implements the image.Image interface.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// ColorModel implements the image.Image interface.
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}
