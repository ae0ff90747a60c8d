package tga

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/soft3d"
)

// maxPacket is the largest pixel count one RLE packet can describe.
const maxPacket = 128

// Options are the parameters for encoding.
type Options struct {
	// Depth is the pixel depth in bits: 24 drops alpha, 32 keeps it.
	// Zero means 24.
	Depth int
	// RLE enables run-length encoding.
	RLE bool
}

// Encode writes tex as a truecolor TGA with a top-left origin, so row 0
// of the texture is the top row of the file. A nil o encodes 24 bits
// uncompressed.
func Encode(w io.Writer, tex *soft3d.Texture, o *Options) error {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Depth == 0 {
		opts.Depth = 24
	}
	if opts.Depth != 24 && opts.Depth != 32 {
		return fmt.Errorf("tga: encode depth %d: %w", opts.Depth, ErrUnsupported)
	}
	if tex.Width() > math.MaxUint16 || tex.Height() > math.MaxUint16 {
		return fmt.Errorf("tga: %dx%d image too large: %w", tex.Width(), tex.Height(), ErrUnsupported)
	}

	h := header{
		ImageType:  typeTrueColor,
		Width:      uint16(tex.Width()),
		Height:     uint16(tex.Height()),
		PixelDepth: uint8(opts.Depth),
		Descriptor: descTopToBottom,
	}
	if opts.RLE {
		h.ImageType = typeTrueColorRLE
	}
	if opts.Depth == 32 {
		h.Descriptor |= 8 // alpha bits
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("tga: write header: %w", err)
	}

	e := encoder{w: bw, bpp: opts.Depth / 8}
	pix := tex.Pix()
	for y := 0; y < tex.Height(); y++ {
		row := pix[y*tex.Width() : (y+1)*tex.Width()]
		if opts.RLE {
			e.rleRow(row)
		} else {
			for _, c := range row {
				e.pixel(c)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tga: write pixel data: %w", err)
	}
	return nil
}

type encoder struct {
	w   *bufio.Writer
	bpp int
	buf [4]byte
}

func (e *encoder) pixel(c soft3d.Color) {
	e.buf = [4]byte{c.B, c.G, c.R, c.A}
	// bufio.Writer keeps the first error and reports it on Flush
	_, _ = e.w.Write(e.buf[:e.bpp])
}

func (e *encoder) same(a, b soft3d.Color) bool {
	if e.bpp == 3 {
		a.A, b.A = 0, 0
	}
	return a == b
}

// rleRow encodes one scanline. Packets never span rows.
func (e *encoder) rleRow(row []soft3d.Color) {
	for i := 0; i < len(row); {
		run := 1
		for i+run < len(row) && run < maxPacket && e.same(row[i+run], row[i]) {
			run++
		}
		if run > 1 {
			_ = e.w.WriteByte(0x80 | byte(run-1))
			e.pixel(row[i])
			i += run
			continue
		}

		// literal packet up to the start of the next run
		start := i
		i++
		for i < len(row) && i-start < maxPacket && !(i+1 < len(row) && e.same(row[i], row[i+1])) {
			i++
		}
		_ = e.w.WriteByte(byte(i - start - 1))
		for _, c := range row[start:i] {
			e.pixel(c)
		}
	}
}

// Save encodes tex to the file at path.
func Save(path string, tex *soft3d.Texture, o *Options) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("tga: create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("tga: close file: %w", cerr)
		}
	}()
	return Encode(f, tex, o)
}
