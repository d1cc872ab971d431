package resample

import "github.com/gogpu/rescale/internal/kernel"

// Filter is the full description of a kernel-based resampler. Every
// kernel-based algorithm is a Filter value run through Convolve; none of
// them has its own pixel loop.
type Filter struct {
	// Name identifies the filter in logs.
	Name string

	// Kernel is the 1D reconstruction kernel, applied separably.
	Kernel kernel.Kernel

	// Mapping converts destination indices to source coordinates.
	Mapping Mapping

	// Boundary decides the kernel distance of out-of-range taps.
	Boundary Boundary

	// Normalize divides by the sum of the tap weights. A zero sum is
	// replaced by 1.
	Normalize bool

	// Sharpen enables the center-sample blend controlled by the sharpness
	// argument of Convolve. It never touches alpha.
	Sharpen bool
}

// WithMapping returns a copy of f using mapping m.
func (f Filter) WithMapping(m Mapping) Filter {
	f.Mapping = m
	return f
}

// Predefined filters.
var (
	// Bilinear blends the 2x2 neighborhood with weights (1-dx)(1-dy),
	// dx(1-dy), (1-dx)dy and dx·dy. The weights already sum to one so the
	// result is not renormalized.
	Bilinear = Filter{
		Name:     "bilinear",
		Kernel:   kernel.Triangle,
		Mapping:  CornerAligned,
		Boundary: ReplicateEdge,
	}

	// Bicubic samples a 4x4 neighborhood with the a = -0.5 cubic kernel.
	Bicubic = Filter{
		Name:      "bicubic",
		Kernel:    kernel.Bicubic,
		Mapping:   CornerAligned,
		Boundary:  SnapToEdge,
		Normalize: true,
	}

	// Mitchell samples a 4x4 neighborhood with the B = C = 1/3 cubic kernel.
	Mitchell = Filter{
		Name:      "mitchell",
		Kernel:    kernel.Mitchell,
		Mapping:   PixelCenter,
		Boundary:  SnapToEdge,
		Normalize: true,
	}

	// Lanczos3 samples a 6x6 neighborhood with the three-lobe Lanczos kernel
	// and supports sharpening.
	Lanczos3 = Filter{
		Name:      "lanczos3",
		Kernel:    kernel.Lanczos3,
		Mapping:   PixelCenter,
		Boundary:  SnapToEdge,
		Normalize: true,
		Sharpen:   true,
	}
)
