package rescale

import (
	"fmt"
	"math"
)

// Settings are the per-call resampling parameters.
type Settings struct {
	// Algorithm selects the resampling filter.
	Algorithm Algorithm

	// Sharpness blends each Lanczos3 result toward the source pixel under
	// its center: value += (center - value) * Sharpness. Zero disables it.
	// Other algorithms ignore it.
	Sharpness float64

	// Gamma applies out = (in/255)^(1/Gamma) * 255 to R, G and B after
	// resampling. 1.0 disables it.
	Gamma float64
}

// DefaultSettings returns Lanczos3 with no sharpening and gamma 1.0.
func DefaultSettings() Settings {
	return Settings{
		Algorithm: DefaultAlgorithm,
		Sharpness: 0,
		Gamma:     1.0,
	}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if !s.Algorithm.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(s.Algorithm))
	}
	if !(s.Sharpness >= 0) || math.IsInf(s.Sharpness, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSharpness, s.Sharpness)
	}
	if !(s.Gamma > 0) || math.IsInf(s.Gamma, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidGamma, s.Gamma)
	}
	return nil
}

// Option configures a resize call.
//
// Example:
//
//	dst, err := rescale.Resize(src, 800, 600,
//	    rescale.WithAlgorithm(rescale.Bicubic),
//	    rescale.WithGamma(2.2),
//	)
type Option func(*options)

// options holds the configuration of one resize call.
type options struct {
	settings Settings

	unsharpSigma  float64
	unsharpAmount float64

	observer    Observer
	workers     int
	pixelCenter bool
}

func defaultOptions() options {
	return options{
		settings: DefaultSettings(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithAlgorithm selects the resampling algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.settings.Algorithm = a
	}
}

// WithSettings replaces algorithm, sharpness and gamma at once.
func WithSettings(s Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithSharpness sets the Lanczos3 sharpness blend. Typical values lie in
// [0, 1]; values above 1 extrapolate past the center sample.
func WithSharpness(s float64) Option {
	return func(o *options) {
		o.settings.Sharpness = s
	}
}

// WithGamma sets the gamma applied after resampling.
func WithGamma(g float64) Option {
	return func(o *options) {
		o.settings.Gamma = g
	}
}

// WithUnsharpMask applies an unsharp mask to the resampled image, before
// gamma: out = in + amount*(in - gaussian(in, sigma)) on R, G and B.
// sigma <= 0 or amount == 0 disables it.
//
// Unlike the Lanczos3 sharpness blend it works with every algorithm.
func WithUnsharpMask(sigma, amount float64) Option {
	return func(o *options) {
		o.unsharpSigma = sigma
		o.unsharpAmount = amount
	}
}

// WithObserver registers an observer for progress events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithWorkers sets how many goroutines compute the result. 1 runs on the
// calling goroutine. 0 (the default) uses a shared pool sized GOMAXPROCS.
// The output is identical for every worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPixelCenterSampling makes Bilinear and Bicubic use the pixel-center
// mapping (x+0.5)*src/dst that Mitchell and Lanczos3 use, instead of
// x*(src-1)/dst. This removes the slight shift toward the top-left those
// two algorithms otherwise show.
func WithPixelCenterSampling() Option {
	return func(o *options) {
		o.pixelCenter = true
	}
}
