package resample

import "math"

// axisWeights holds, for each destination index along one axis, the source
// indices and kernel weights of its taps. Entry i occupies
// index[i*taps : (i+1)*taps].
//
// Because the 2D weight of a tap is the product of its two axis weights,
// the tables are computed once per axis instead of once per pixel.
type axisWeights struct {
	taps   int
	index  []int
	weight []float64

	// center is clamp(floor(pos)): the source sample the sharpening blend
	// pulls toward.
	center []int

	// pos is the mapped source coordinate of each destination index.
	pos []float64
}

func newAxisWeights(src, dst int, f Filter) *axisWeights {
	radius := f.Kernel.Radius()
	taps := 2 * radius

	aw := &axisWeights{
		taps:   taps,
		index:  make([]int, dst*taps),
		weight: make([]float64, dst*taps),
		center: make([]int, dst),
		pos:    make([]float64, dst),
	}

	for i := range dst {
		pos := f.Mapping.Position(i, src, dst)
		floor := int(math.Floor(pos))
		start := floor - radius + 1

		aw.pos[i] = pos
		aw.center[i] = clampInt(floor, 0, src-1)

		for k := range taps {
			nominal := start + k
			si := clampInt(nominal, 0, src-1)

			var d float64
			if f.Boundary == ReplicateEdge {
				d = pos - float64(nominal)
			} else {
				d = pos - float64(si)
			}

			aw.index[i*taps+k] = si
			aw.weight[i*taps+k] = f.Kernel.At(d)
		}
	}

	return aw
}

// span is a half-open source interval [lo, hi).
type span struct {
	lo, hi int
}

// boxSpans returns, per destination index, the source interval
// [floor(i*ratio), ceil((i+1)*ratio)) clamped to the source.
func boxSpans(src, dst int) []span {
	ratio := EdgeAligned.Ratio(src, dst)
	spans := make([]span, dst)
	for i := range dst {
		lo := int(math.Floor(float64(i) * ratio))
		hi := int(math.Ceil(float64(i+1) * ratio))
		lo = clampInt(lo, 0, src-1)
		hi = clampInt(hi, lo+1, src)
		spans[i] = span{lo, hi}
	}
	return spans
}

// nearestIndex returns floor(i*src/dst) per destination index, clamped.
func nearestIndex(src, dst int) []int {
	ratio := EdgeAligned.Ratio(src, dst)
	idx := make([]int, dst)
	for i := range dst {
		idx[i] = clampInt(int(math.Floor(float64(i)*ratio)), 0, src-1)
	}
	return idx
}
