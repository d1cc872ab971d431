package rescale

import "errors"

// Errors returned by rescale. Returned errors may wrap these with extra
// context; test with errors.Is.
var (
	// ErrInvalidDimensions is returned when a source or target width or
	// height is not positive.
	ErrInvalidDimensions = errors.New("rescale: invalid dimensions")

	// ErrBufferSize is returned when len(Pix) != Width*Height*4.
	ErrBufferSize = errors.New("rescale: buffer size does not match dimensions")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognized names.
	ErrUnknownAlgorithm = errors.New("rescale: unknown algorithm")

	// ErrInvalidScale is returned for scale factors that are not finite and
	// positive.
	ErrInvalidScale = errors.New("rescale: invalid scale factor")

	// ErrInvalidGamma is returned for gamma values that are not finite and
	// positive.
	ErrInvalidGamma = errors.New("rescale: invalid gamma")

	// ErrInvalidSharpness is returned for negative or non-finite sharpness.
	ErrInvalidSharpness = errors.New("rescale: invalid sharpness")

	// ErrUnknownPreset is returned by LookupPreset for unrecognized names.
	ErrUnknownPreset = errors.New("rescale: unknown preset")
)
