package image

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	// Register decoders beyond the ones imaging pulls in.
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is used when EncodeOptions.Quality is zero.
const DefaultJPEGQuality = 90

// DecodeOptions control decoding.
type DecodeOptions struct {
	// AutoOrient applies the EXIF orientation tag of JPEG and TIFF files so
	// the returned pixels are upright.
	AutoOrient bool
}

// EncodeOptions control encoding.
type EncodeOptions struct {
	// Quality is the JPEG quality in [1, 100]. Zero selects
	// DefaultJPEGQuality; other out-of-range values are clamped.
	Quality int
}

// Decode reads an image of any registered format and converts it to NRGBA.
func Decode(r io.Reader, opts DecodeOptions) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(opts.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return ToNRGBA(img), nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte, opts DecodeOptions) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), opts)
}

// Load decodes the image file at path.
func Load(path string, opts DecodeOptions) (*image.NRGBA, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	var target imaging.Format
	switch f {
	case FormatPNG:
		target = imaging.PNG
	case FormatJPEG:
		target = imaging.JPEG
	case FormatGIF:
		target = imaging.GIF
	case FormatBMP:
		target = imaging.BMP
	case FormatTIFF:
		target = imaging.TIFF
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}

	if err := imaging.Encode(w, img, target, imaging.JPEGQuality(jpegQuality(opts.Quality))); err != nil {
		return fmt.Errorf("image: encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img into a new file at path. The format follows the file
// extension.
func Save(path string, img image.Image, opts EncodeOptions) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !f.CanEncode() {
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}

	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := Encode(out, img, f, opts); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func jpegQuality(q int) int {
	if q == 0 {
		return DefaultJPEGQuality
	}
	return min(max(q, 1), 100)
}

// ToNRGBA returns img as an NRGBA image whose bounds start at (0, 0) and
// whose stride is exactly 4*width. An *image.NRGBA that already has that
// layout is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Pixels returns the tightly packed RGBA8 pixels of img along with its size.
// The slice aliases img when img is already tightly packed.
func Pixels(img image.Image) (pix []uint8, width, height int) {
	n := ToNRGBA(img)
	return n.Pix, n.Rect.Dx(), n.Rect.Dy()
}

// FromPixels wraps tightly packed RGBA8 pixels in an NRGBA image without
// copying.
func FromPixels(pix []uint8, width, height int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}
