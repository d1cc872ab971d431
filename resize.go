package rescale

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gogpu/rescale/internal/color"
	"github.com/gogpu/rescale/internal/filter"
	"github.com/gogpu/rescale/internal/parallel"
	"github.com/gogpu/rescale/internal/resample"
)

// maxSampleEvents is the number of EventSample notifications per call.
const maxSampleEvents = 2

// resampler is one entry of the dispatch table. Kernel-based algorithms are
// described by a Filter and share resample.Convolve; the others have a
// dedicated loop in direct.
type resampler struct {
	filter  resample.Filter
	direct  func(src []uint8, srcW, srcH, dstW, dstH int, r parallel.Runner) []uint8
	mapping resample.Mapping
}

var resamplers = [algorithmCount]resampler{
	NearestNeighbor: {direct: resample.Nearest, mapping: resample.EdgeAligned},
	Bilinear:        {filter: resample.Bilinear},
	Bicubic:         {filter: resample.Bicubic},
	Mitchell:        {filter: resample.Mitchell},
	Lanczos3:        {filter: resample.Lanczos3},
	Box:             {direct: resample.Box, mapping: resample.EdgeAligned},
}

// filterFor returns the effective filter for the call options.
func (rs *resampler) filterFor(o *options) resample.Filter {
	if o.pixelCenter {
		return rs.filter.WithMapping(resample.PixelCenter)
	}
	return rs.filter
}

// sourceMapping returns the coordinate mapping used to report samples.
func (rs *resampler) sourceMapping(o *options) resample.Mapping {
	if rs.direct != nil {
		return rs.mapping
	}
	return rs.filterFor(o).Mapping
}

func (rs *resampler) run(src *Buffer, dstW, dstH int, o *options, r parallel.Runner) []uint8 {
	if rs.direct != nil {
		return rs.direct(src.Pix, src.Width, src.Height, dstW, dstH, r)
	}
	f := rs.filterFor(o)
	sharpness := 0.0
	if f.Sharpen {
		sharpness = o.settings.Sharpness
	}
	return resample.Convolve(src.Pix, src.Width, src.Height, dstW, dstH, f, sharpness, r)
}

// Resize resamples src to width×height. src is not modified; the result is
// a new buffer.
//
// The pipeline is: resample with the selected algorithm, then the optional
// unsharp mask, then gamma. With no options the algorithm is Lanczos3 with
// no sharpening and gamma 1.0.
//
// Resize returns ErrInvalidDimensions or ErrBufferSize for a malformed
// source or a non-positive target, and the Settings validation errors for
// bad options. No buffer is returned on error.
func Resize(src *Buffer, width, height int, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)
	return resize(src, width, height, &o)
}

// ResizeScale resamples src by a uniform scale factor. The target size is
// (floor(srcW*scale), floor(srcH*scale)); a target that rounds down to zero
// returns ErrInvalidDimensions.
func ResizeScale(src *Buffer, scale float64, opts ...Option) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	w, h, err := ScaleDims(src.Width, src.Height, scale)
	if err != nil {
		return nil, err
	}
	return Resize(src, w, h, opts...)
}

// ResizeTarget resamples src to the size t resolves to.
func ResizeTarget(src *Buffer, t Target, opts ...Option) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	w, h, err := t.Resolve(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	return Resize(src, w, h, opts...)
}

// ResizeNamed is Resize with the algorithm given by name. Unrecognized names
// fall back to DefaultAlgorithm with a warning in the log. The named
// algorithm overrides any WithAlgorithm or WithSettings in opts.
func ResizeNamed(src *Buffer, algorithm string, width, height int, opts ...Option) (*Buffer, error) {
	a, err := ParseAlgorithm(algorithm)
	if err != nil {
		Logger().Warn("rescale: unknown algorithm, using default",
			"name", algorithm, "default", DefaultAlgorithm.String())
		a = DefaultAlgorithm
	}
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithAlgorithm(a))
	return Resize(src, width, height, all...)
}

// ApplyGamma returns b with out = (in/255)^(1/gamma) * 255 applied to R, G
// and B, rounded to nearest. Alpha is unchanged. For gamma == 1.0 b itself is
// returned; otherwise the result is a new buffer.
func ApplyGamma(b *Buffer, gamma float64) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGamma, gamma)
	}
	if gamma == 1.0 {
		return b, nil
	}
	out := b.Clone()
	color.CachedGammaLUT(gamma).Apply(out.Pix)
	return out, nil
}

func validateUnsharp(sigma, amount float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: unsharp mask sigma %v amount %v", ErrInvalidSharpness, sigma, amount)
	}
	return nil
}

func resize(src *Buffer, dstW, dstH int, o *options) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if dstW <= 0 || dstH <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, dstW, dstH)
	}
	if err := o.settings.Validate(); err != nil {
		return nil, err
	}
	if err := validateUnsharp(o.unsharpSigma, o.unsharpAmount); err != nil {
		return nil, err
	}

	s := o.settings
	log := Logger()
	if s.Sharpness > 0 && s.Algorithm != Lanczos3 {
		log.Warn("rescale: sharpness only applies to lanczos, ignoring",
			"algorithm", s.Algorithm.String(), "sharpness", s.Sharpness)
	}

	rs := &resamplers[s.Algorithm]
	start := time.Now()
	base := Event{
		Algorithm: s.Algorithm,
		SrcWidth:  src.Width,
		SrcHeight: src.Height,
		DstWidth:  dstW,
		DstHeight: dstH,
	}

	notify := func(e Event) {
		if o.observer != nil {
			o.observer.Observe(e)
		}
	}

	e := base
	e.Kind = EventStart
	notify(e)

	m := rs.sourceMapping(o)
	for i := range min(maxSampleEvents, dstW*dstH) {
		x, y := i%dstW, i/dstW
		e := base
		e.Kind = EventSample
		e.X, e.Y = x, y
		e.SrcX = m.Position(x, src.Width, dstW)
		e.SrcY = m.Position(y, src.Height, dstH)
		notify(e)
	}

	pool, release := o.pool()
	defer release()

	bands := parallel.Bands{Pool: pool}
	if o.observer != nil {
		var (
			mu   sync.Mutex
			rows int
		)
		bands.OnBand = func(n int) {
			mu.Lock()
			defer mu.Unlock()
			rows += n
			e := base
			e.Kind = EventProgress
			e.RowsDone = rows
			o.observer.Observe(e)
		}
	}

	pix := rs.run(src, dstW, dstH, o, bands)

	if o.unsharpSigma > 0 && o.unsharpAmount != 0 {
		pix = filter.UnsharpMask(pix, dstW, dstH, o.unsharpSigma, o.unsharpAmount, parallel.Bands{Pool: pool})
	}
	if s.Gamma != 1.0 {
		color.CachedGammaLUT(s.Gamma).Apply(pix)
	}

	elapsed := time.Since(start)
	log.Debug("rescale: resize",
		"algorithm", s.Algorithm.String(),
		"src", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"dst", fmt.Sprintf("%dx%d", dstW, dstH),
		"workers", workerCount(pool),
		"sharpness", s.Sharpness,
		"gamma", s.Gamma,
		"elapsed", elapsed)

	e = base
	e.Kind = EventDone
	e.RowsDone = dstH
	e.Elapsed = elapsed
	notify(e)

	return &Buffer{Pix: pix, Width: dstW, Height: dstH}, nil
}

// pool returns the worker pool for one call and the function releasing it.
// A nil pool runs on the calling goroutine.
func (o *options) pool() (*parallel.Pool, func()) {
	switch {
	case o.workers == 1:
		return nil, func() {}
	case o.workers > 1:
		p := parallel.NewPool(o.workers)
		return p, p.Close
	default:
		return parallel.Shared(), func() {}
	}
}

func workerCount(p *parallel.Pool) int {
	if p == nil {
		return 1
	}
	return p.Workers()
}
