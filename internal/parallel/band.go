package parallel

// MinBandRows is the smallest band handed to a worker. Tiny bands cost more
// in scheduling than they save in parallelism.
const MinBandRows = 8

// BandFunc processes destination rows [y0, y1).
type BandFunc func(y0, y1 int)

// Runner executes band work over height rows. Implementations must call fn
// for disjoint row ranges that together cover [0, height) exactly once, and
// must return only after every call has returned.
type Runner interface {
	Run(height int, fn BandFunc)
}

// Serial runs the whole range as a single band on the calling goroutine.
type Serial struct{}

// Run implements Runner.
func (Serial) Run(height int, fn BandFunc) {
	if height > 0 {
		fn(0, height)
	}
}

// Bands splits rows across a Pool.
type Bands struct {
	// Pool executes the bands. A nil Pool runs serially.
	Pool *Pool

	// OnBand, if set, is called after each band completes with the number of
	// rows in that band. It may be called concurrently from several workers.
	OnBand func(rows int)
}

// Run implements Runner.
func (b Bands) Run(height int, fn BandFunc) {
	if height <= 0 {
		return
	}

	workers := 1
	if b.Pool != nil {
		workers = b.Pool.Workers()
	}

	spans := Split(height, workers*4, MinBandRows)
	if len(spans) == 1 || b.Pool == nil {
		for _, s := range spans {
			fn(s[0], s[1])
			if b.OnBand != nil {
				b.OnBand(s[1] - s[0])
			}
		}
		return
	}

	work := make([]func(), len(spans))
	for i, s := range spans {
		y0, y1 := s[0], s[1]
		work[i] = func() {
			fn(y0, y1)
			if b.OnBand != nil {
				b.OnBand(y1 - y0)
			}
		}
	}
	b.Pool.ExecuteAll(work)
}

// Split cuts [0, n) into at most parts contiguous spans of at least minSize
// elements each (the last span may be shorter only when n < minSize).
func Split(n, parts, minSize int) [][2]int {
	if n <= 0 {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}
	if parts < 1 {
		parts = 1
	}
	parts = min(parts, max(1, n/minSize))

	spans := make([][2]int, 0, parts)
	base, extra := n/parts, n%parts
	start := 0
	for i := range parts {
		size := base
		if i < extra {
			size++
		}
		spans = append(spans, [2]int{start, start + size})
		start += size
	}
	return spans
}
