package filter

import (
	"sync"

	"github.com/gogpu/rescale/internal/parallel"
)

// Blur returns a Gaussian-blurred copy of the RGBA8 image pix (w×h, tightly
// packed). All four channels are blurred. Samples beyond the border repeat
// the edge pixel. For sigma <= 0 the result is a plain copy.
func Blur(pix []uint8, w, h int, sigma float64, r parallel.Runner) []uint8 {
	out := make([]uint8, len(pix))
	if sigma <= 0 {
		copy(out, pix)
		return out
	}

	blurred := getFloatBuffer(len(pix))
	defer putFloatBuffer(blurred)

	blurFloat(pix, blurred, w, h, CachedGaussianKernel(sigma), r)
	for i, v := range blurred {
		out[i] = clampUint8(v)
	}
	return out
}

// blurFloat runs the separable two-pass convolution: horizontal from pix
// into a scratch buffer, then vertical from the scratch buffer into dst.
// dst must hold w*h*4 values.
func blurFloat(pix []uint8, dst []float32, w, h int, k []float32, r parallel.Runner) {
	tmp := getFloatBuffer(len(dst))
	defer putFloatBuffer(tmp)

	half := len(k) / 2
	stride := w * 4

	r.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := pix[y*stride : (y+1)*stride]
			out := tmp[y*stride : (y+1)*stride]
			for x := range w {
				var acc [4]float32
				for i, wt := range k {
					sx := clampIndex(x+i-half, w) * 4
					acc[0] += float32(row[sx]) * wt
					acc[1] += float32(row[sx+1]) * wt
					acc[2] += float32(row[sx+2]) * wt
					acc[3] += float32(row[sx+3]) * wt
				}
				copy(out[x*4:x*4+4], acc[:])
			}
		}
	})

	r.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst[y*stride : (y+1)*stride]
			clear(out)
			for i, wt := range k {
				sy := clampIndex(y+i-half, h)
				src := tmp[sy*stride : (sy+1)*stride]
				for j, v := range src {
					out[j] += v * wt
				}
			}
		}
	})
}

// floatBuffer wraps a slice so sync.Pool stores a pointer.
type floatBuffer struct {
	data []float32
}

var floatBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{}
	},
}

// getFloatBuffer returns a scratch buffer of exactly n values. Contents are
// undefined.
func getFloatBuffer(n int) []float32 {
	fb := floatBufferPool.Get().(*floatBuffer)
	if cap(fb.data) < n {
		floatBufferPool.Put(fb)
		return make([]float32, n)
	}
	return fb.data[:n]
}

// putFloatBuffer returns buf to the pool. Buffers above 64 MB are dropped.
func putFloatBuffer(buf []float32) {
	if cap(buf) > 16*1024*1024 {
		return
	}
	floatBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// clampUint8 rounds half up and clamps to [0, 255].
func clampUint8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
