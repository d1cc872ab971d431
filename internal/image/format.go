// Package image decodes and encodes image files for the rescale command.
//
// Decoded images are always converted to *image.NRGBA, the straight-alpha
// RGBA8 layout the resampler works on.
package image

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an image file format.
type Format uint8

const (
	// FormatPNG is lossless and keeps alpha.
	FormatPNG Format = iota

	// FormatJPEG is lossy and drops alpha.
	FormatJPEG

	// FormatGIF is palette based.
	FormatGIF

	// FormatBMP is uncompressed.
	FormatBMP

	// FormatTIFF is lossless and keeps alpha.
	FormatTIFF

	// FormatWebP can be decoded but not encoded.
	FormatWebP

	formatCount
)

var formatNames = [formatCount]string{
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatGIF:  "gif",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatWebP: "webp",
}

var formatExts = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWebP,
}

// Errors.
var (
	// ErrUnsupportedFormat is returned for unknown formats and for encoding
	// formats that are decode-only.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when decoding zero bytes.
	ErrEmptyData = errors.New("image: empty data")
)

// String returns the lower-case format name.
func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatNames[f]
}

// CanEncode reports whether images can be written in this format.
func (f Format) CanEncode() bool {
	return f < FormatWebP
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tif"
	}
	if f >= formatCount {
		return ""
	}
	return "." + formatNames[f]
}

// ParseFormat parses a format name ("png", "jpg", "jpeg", ...), case
// insensitive.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if f, ok := formatExts["."+n]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatExts[ext]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}
