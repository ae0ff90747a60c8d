package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/tga"
)

// JPEGQuality is the quality used by SaveImage for .jpg output.
const JPEGQuality = 95

// LoadTexture reads a texture file. PNG, JPEG, BMP and TIFF are detected
// from the file contents; anything else is decoded as TGA, which has no
// signature. Row 0 of the result is the top of the image.
func LoadTexture(path string) (*soft3d.Texture, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("scene: read texture: %w", err)
	}

	kind, _ := filetype.Match(data)
	var decode func(io.Reader) (image.Image, error)
	switch kind.Extension {
	case "png":
		decode = png.Decode
	case "jpg":
		decode = jpeg.Decode
	case "bmp":
		decode = bmp.Decode
	case "tif":
		decode = tiff.Decode
	default:
		tex, err := tga.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("scene: %s: %w", path, err)
		}
		return tex, nil
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scene: decode %s %s: %w", kind.Extension, path, err)
	}
	soft3d.Logger().Debug("texture loaded", "path", path, "format", kind.Extension)
	return soft3d.FromImage(img), nil
}

// SaveImage writes a rendered frame, choosing the encoder from the file
// extension: .tga, .png, .jpg/.jpeg, .bmp or .tif/.tiff. Frames are drawn
// with row 0 at the bottom, so the image is flipped on the way out. rle
// only affects TGA output.
func SaveImage(path string, frame *soft3d.Texture, rle bool) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	upright := frame.Clone()
	upright.FlipVertically()

	if ext == ".tga" {
		return tga.Save(path, upright, &tga.Options{Depth: 24, RLE: rle})
	}

	var encode func(io.Writer, image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		}
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("scene: output %s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("scene: create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("scene: close file: %w", cerr)
		}
	}()

	if err := encode(f, upright.ToImage()); err != nil {
		return fmt.Errorf("scene: encode %s: %w", ext, err)
	}
	return nil
}
