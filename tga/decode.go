// Package tga reads and writes Truevision TGA images.
//
// Supported on input: uncompressed and run-length encoded truecolor and
// grayscale images with 8, 24 or 32 bits per pixel. Color-mapped images
// are not supported. Output is truecolor at 24 or 32 bits, optionally run
// length encoded.
package tga

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/soft3d"
)

// TGA errors.
var (
	// ErrUnsupported is returned for image types and pixel depths this
	// package does not handle.
	ErrUnsupported = errors.New("tga: unsupported format")

	// ErrPixelCount is returned when run-length data describes more
	// pixels than the image holds.
	ErrPixelCount = errors.New("tga: wrong pixel count")

	// ErrTruncated is returned when the file ends early.
	ErrTruncated = errors.New("tga: truncated data")
)

// Image types.
const (
	typeTrueColor    = 2
	typeGrayscale    = 3
	typeTrueColorRLE = 10
	typeGrayscaleRLE = 11
)

// Descriptor bits.
const (
	descRightToLeft = 1 << 4
	descTopToBottom = 1 << 5
)

// header is the fixed 18-byte TGA file header.
type header struct {
	IDLength      uint8
	ColorMapType  uint8
	ImageType     uint8
	ColorMapFirst uint16
	ColorMapLen   uint16
	ColorMapDepth uint8
	XOrigin       uint16
	YOrigin       uint16
	Width         uint16
	Height        uint16
	PixelDepth    uint8
	Descriptor    uint8
}

// Decode reads a TGA image. Row 0 of the result is the top row of the
// picture regardless of the origin stored in the file.
func Decode(r io.Reader) (*soft3d.Texture, error) {
	br := bufio.NewReader(r)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, truncated("header", err)
	}

	switch h.PixelDepth {
	case 8, 24, 32:
	default:
		return nil, fmt.Errorf("tga: pixel depth %d: %w", h.PixelDepth, ErrUnsupported)
	}
	rle := false
	switch h.ImageType {
	case typeTrueColor, typeGrayscale:
	case typeTrueColorRLE, typeGrayscaleRLE:
		rle = true
	default:
		return nil, fmt.Errorf("tga: image type %d: %w", h.ImageType, ErrUnsupported)
	}

	// image id, then any color map a truecolor image carries
	skip := int64(h.IDLength)
	if h.ColorMapType != 0 {
		skip += int64(h.ColorMapLen) * int64((int(h.ColorMapDepth)+7)/8)
	}
	if _, err := io.CopyN(io.Discard, br, skip); err != nil {
		return nil, truncated("image id", err)
	}

	// Memory grows with the pixel data actually read, not with the header.
	n := int(h.Width) * int(h.Height)
	bpp := int(h.PixelDepth) / 8
	var (
		pix []soft3d.Color
		err error
	)
	if rle {
		pix, err = decodeRLE(br, n, bpp)
	} else {
		pix, err = decodeRaw(br, n, bpp)
	}
	if err != nil {
		return nil, err
	}
	tex := soft3d.NewTexture(int(h.Width), int(h.Height))
	copy(tex.Pix(), pix)

	if h.Descriptor&descRightToLeft != 0 {
		tex.FlipHorizontally()
	}
	if h.Descriptor&descTopToBottom == 0 {
		tex.FlipVertically()
	}
	return tex, nil
}

// readChunk is the number of pixels read from the file at a time.
const readChunk = 1 << 14

func decodeRaw(r io.Reader, n, bpp int) ([]soft3d.Color, error) {
	pix := make([]soft3d.Color, 0, min(n, readChunk))
	raw := make([]byte, min(n, readChunk)*bpp)
	for len(pix) < n {
		k := min(n-len(pix), readChunk)
		if _, err := io.ReadFull(r, raw[:k*bpp]); err != nil {
			return nil, truncated("pixel data", err)
		}
		for i := 0; i < k; i++ {
			pix = append(pix, pixel(raw[i*bpp:], bpp))
		}
	}
	return pix, nil
}

func decodeRLE(br *bufio.Reader, n, bpp int) ([]soft3d.Color, error) {
	pix := make([]soft3d.Color, 0, min(n, readChunk))
	var buf [4]byte
	for len(pix) < n {
		ctrl, err := br.ReadByte()
		if err != nil {
			return nil, truncated("packet header", err)
		}
		count := int(ctrl&0x7f) + 1
		if len(pix)+count > n {
			return nil, fmt.Errorf("tga: packet of %d at pixel %d of %d: %w", count, len(pix), n, ErrPixelCount)
		}

		if ctrl&0x80 != 0 {
			if _, err := io.ReadFull(br, buf[:bpp]); err != nil {
				return nil, truncated("run packet", err)
			}
			c := pixel(buf[:], bpp)
			for range count {
				pix = append(pix, c)
			}
			continue
		}

		for range count {
			if _, err := io.ReadFull(br, buf[:bpp]); err != nil {
				return nil, truncated("raw packet", err)
			}
			pix = append(pix, pixel(buf[:], bpp))
		}
	}
	return pix, nil
}

// pixel converts one stored pixel. Channels are in B, G, R, A order;
// grayscale replicates the single value.
func pixel(b []byte, bpp int) soft3d.Color {
	switch bpp {
	case 1:
		return soft3d.Color{R: b[0], G: b[0], B: b[0], A: 255}
	case 3:
		return soft3d.Color{R: b[2], G: b[1], B: b[0], A: 255}
	default:
		return soft3d.Color{R: b[2], G: b[1], B: b[0], A: b[3]}
	}
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("tga: %s: %w", what, ErrTruncated)
	}
	return fmt.Errorf("tga: %s: %w", what, err)
}

// Load decodes the TGA file at path.
func Load(path string) (*soft3d.Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("tga: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	tex, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tga: %s: %w", path, err)
	}
	soft3d.Logger().Debug("tga loaded", "path", path, "width", tex.Width(), "height", tex.Height())
	return tex, nil
}
