// Package kernel provides the reconstruction kernels used by the resampler.
//
// A kernel is a pure function of a signed distance x, measured in source
// pixels, returning the weight of a source sample at that distance. Cubic and
// Lanczos kernels go negative between their lobes, which is what produces
// their sharpening (and ringing) behavior.
//
// All kernels are deterministic and allocation free.
package kernel

import "math"

// Kernel describes a separable reconstruction filter.
type Kernel struct {
	// Name is a short human readable identifier.
	Name string

	// Support is the largest |x| at which At can be nonzero.
	Support float64

	// At evaluates the kernel at signed distance x.
	At func(x float64) float64
}

// Taps returns the number of source samples per axis the kernel touches:
// 2*ceil(Support).
func (k Kernel) Taps() int {
	return 2 * k.Radius()
}

// Radius returns ceil(Support) as an integer tap radius.
func (k Kernel) Radius() int {
	return int(math.Ceil(k.Support))
}

// Predefined kernels.
var (
	// Triangle is the linear interpolation kernel used by bilinear resampling.
	Triangle = Kernel{Name: "triangle", Support: 1, At: triangle}

	// Bicubic is Keys cubic convolution with a = -0.5.
	Bicubic = NewKeys(-0.5)

	// Mitchell is the Mitchell-Netravali cubic with B = C = 1/3.
	Mitchell = NewCubic(1.0/3.0, 1.0/3.0)

	// Lanczos3 is the three-lobe windowed sinc.
	Lanczos3 = NewLanczos(3)
)

func triangle(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return 1 - x
	}
	return 0
}

// NewKeys returns a Keys cubic convolution kernel with parameter a.
// a = -0.5 is the common "bicubic"; a = -0.75 matches some photo editors.
func NewKeys(a float64) Kernel {
	return Kernel{
		Name:    "keys",
		Support: 2,
		At: func(x float64) float64 {
			ax := math.Abs(x)
			switch {
			case ax <= 1:
				return (a+2)*ax*ax*ax - (a+3)*ax*ax + 1
			case ax < 2:
				return a*ax*ax*ax - 5*a*ax*ax + 8*a*ax - 4*a
			}
			return 0
		},
	}
}

// NewCubic returns a cubic filter based on the B and C parameters defined by
// Mitchell and Netravali. (1/3, 1/3) is the Mitchell filter, (0, 0.5) is
// Catmull-Rom and (1, 0) is the cubic B-spline.
func NewCubic(b, c float64) Kernel {
	return Kernel{
		Name:    "cubic",
		Support: 2,
		At: func(x float64) float64 {
			ax := math.Abs(x)
			switch {
			case ax < 1:
				return ((12-9*b-6*c)*ax*ax*ax +
					(-18+12*b+6*c)*ax*ax +
					(6 - 2*b)) / 6
			case ax < 2:
				return ((-b-6*c)*ax*ax*ax +
					(6*b+30*c)*ax*ax +
					(-12*b-48*c)*ax +
					(8*b + 24*c)) / 6
			}
			return 0
		},
	}
}

// NewLanczos returns a Lanczos kernel with the given number of lobes.
//
//	L(0) = 1
//	L(x) = a·sin(πx)·sin(πx/a) / (πx)²   for 0 < |x| < a
//	L(x) = 0                             for |x| >= a
func NewLanczos(lobes int) Kernel {
	a := float64(lobes)
	return Kernel{
		Name:    "lanczos",
		Support: a,
		At: func(x float64) float64 {
			if x == 0 {
				return 1
			}
			if math.Abs(x) >= a {
				return 0
			}
			px := math.Pi * x
			return a * math.Sin(px) * math.Sin(px/a) / (px * px)
		},
	}
}

// Sinc is the normalized sinc function, sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
