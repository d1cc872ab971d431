package rescale

import "fmt"

// Buffer is an RGBA8 raster: four bytes per pixel in R, G, B, A order,
// straight (non-premultiplied) alpha, rows stored top to bottom with no
// padding. Pixel (x, y) starts at Pix[(y*Width+x)*4].
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewBuffer allocates a zeroed (transparent black) buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Buffer{
		Pix:    make([]uint8, width*height*4),
		Width:  width,
		Height: height,
	}, nil
}

// Validate checks that the dimensions are positive and that Pix holds
// exactly Width*Height*4 bytes.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: len %d, want %d for %dx%d",
			ErrBufferSize, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

// At returns the pixel at (x, y). It panics if (x, y) is out of range.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := b.offset(x, y)
	p := b.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Set writes the pixel at (x, y). It panics if (x, y) is out of range.
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	i := b.offset(x, y)
	p := b.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, bl, a
}

func (b *Buffer) offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic(fmt.Sprintf("rescale: pixel (%d, %d) outside %dx%d buffer", x, y, b.Width, b.Height))
	}
	return (y*b.Width + x) * 4
}
