package resample

import "math"

// Mapping selects how a destination pixel index maps to a continuous source
// coordinate along one axis.
type Mapping uint8

const (
	// EdgeAligned maps x to x*src/dst. Destination pixel x covers the source
	// interval [x*src/dst, (x+1)*src/dst). Used by nearest and box.
	EdgeAligned Mapping = iota

	// CornerAligned maps x to x*(src-1)/dst. Used by bilinear and bicubic.
	CornerAligned

	// PixelCenter maps x to (x+0.5)*src/dst. Used by Mitchell and Lanczos.
	PixelCenter
)

// String returns the mapping name.
func (m Mapping) String() string {
	switch m {
	case EdgeAligned:
		return "EdgeAligned"
	case CornerAligned:
		return "CornerAligned"
	case PixelCenter:
		return "PixelCenter"
	default:
		return "Unknown"
	}
}

// Ratio returns the source step per destination pixel.
func (m Mapping) Ratio(src, dst int) float64 {
	if m == CornerAligned {
		return float64(src-1) / float64(dst)
	}
	return float64(src) / float64(dst)
}

// Position returns the source coordinate of destination index i.
func (m Mapping) Position(i, src, dst int) float64 {
	ratio := m.Ratio(src, dst)
	if m == PixelCenter {
		return (float64(i) + 0.5) * ratio
	}
	return float64(i) * ratio
}

// Boundary selects how taps that fall outside the source are weighted.
// Out-of-range lookups are always clamped to the nearest edge pixel; the
// policies only differ in the distance handed to the kernel.
type Boundary uint8

const (
	// SnapToEdge clamps the tap coordinate first and evaluates the kernel at
	// the distance to the clamped pixel. An edge pixel reached through
	// several out-of-range taps is weighted once per tap at its own distance.
	SnapToEdge Boundary = iota

	// ReplicateEdge keeps the nominal tap position for the kernel distance and
	// only substitutes the edge pixel's value.
	ReplicateEdge
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toByte rounds half up and clamps to [0, 255]. NaN maps to 0.
func toByte(v float64) uint8 {
	if v != v {
		return 0
	}
	r := math.Floor(v + 0.5)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
