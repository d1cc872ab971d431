// Package resample implements the pixel loops of the resampling engine.
//
// All functions take a tightly packed RGBA8 source (len == srcW*srcH*4),
// never modify it, and return a freshly allocated destination of
// dstW*dstH*4 bytes. Dimensions must already be validated by the caller:
// every dimension positive and the source length matching.
//
// Rows of the destination are produced through a parallel.Runner, so the
// same code runs serially or on a worker pool with identical output.
package resample

import "github.com/gogpu/rescale/internal/parallel"

// Convolve resamples src with the kernel filter f.
//
// For each destination pixel the taps are visited row by row (ky outer, kx
// inner) and each channel accumulates sum += v*w and wsum += w with
// w = wx*wy. When f.Normalize is set the sum is divided by wsum (or by 1
// when wsum is zero). When f.Sharpen is set and sharpness > 0, the color
// channels are then pulled toward the center source sample:
//
//	value += (center - value) * sharpness
//
// Finally each channel is rounded half up and clamped to [0, 255].
func Convolve(src []uint8, srcW, srcH, dstW, dstH int, f Filter, sharpness float64, r parallel.Runner) []uint8 {
	xw := newAxisWeights(srcW, dstW, f)
	yw := newAxisWeights(srcH, dstH, f)
	sharpen := f.Sharpen && sharpness > 0

	dst := make([]uint8, dstW*dstH*4)
	srcStride := srcW * 4

	r.Run(dstH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			yIdx := yw.index[y*yw.taps : (y+1)*yw.taps]
			yWgt := yw.weight[y*yw.taps : (y+1)*yw.taps]
			centerRow := yw.center[y] * srcStride
			out := dst[y*dstW*4 : (y+1)*dstW*4]

			for x := range dstW {
				xIdx := xw.index[x*xw.taps : (x+1)*xw.taps]
				xWgt := xw.weight[x*xw.taps : (x+1)*xw.taps]

				var sum [4]float64
				var wsum float64

				for ky, sy := range yIdx {
					row := src[sy*srcStride : (sy+1)*srcStride]
					wy := yWgt[ky]
					for kx, sx := range xIdx {
						w := xWgt[kx] * wy
						p := row[sx*4 : sx*4+4 : sx*4+4]
						sum[0] += float64(p[0]) * w
						sum[1] += float64(p[1]) * w
						sum[2] += float64(p[2]) * w
						sum[3] += float64(p[3]) * w
						wsum += w
					}
				}

				if f.Normalize {
					if wsum == 0 {
						wsum = 1
					}
					for c := range sum {
						sum[c] /= wsum
					}
				}

				if sharpen {
					ci := centerRow + xw.center[x]*4
					for c := range 3 {
						sum[c] += (float64(src[ci+c]) - sum[c]) * sharpness
					}
				}

				o := out[x*4 : x*4+4 : x*4+4]
				o[0] = toByte(sum[0])
				o[1] = toByte(sum[1])
				o[2] = toByte(sum[2])
				o[3] = toByte(sum[3])
			}
		}
	})

	return dst
}

// Nearest copies, for each destination pixel, the source pixel at
// (floor(x*srcW/dstW), floor(y*srcH/dstH)). All four channels are copied
// verbatim.
func Nearest(src []uint8, srcW, srcH, dstW, dstH int, r parallel.Runner) []uint8 {
	xs := nearestIndex(srcW, dstW)
	ys := nearestIndex(srcH, dstH)

	dst := make([]uint8, dstW*dstH*4)
	srcStride := srcW * 4

	r.Run(dstH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src[ys[y]*srcStride : (ys[y]+1)*srcStride]
			out := dst[y*dstW*4 : (y+1)*dstW*4]
			for x, sx := range xs {
				copy(out[x*4:x*4+4], row[sx*4:sx*4+4])
			}
		}
	})

	return dst
}

// Box averages every source pixel inside the box
// [floor(x*rx), ceil((x+1)*rx)) × [floor(y*ry), ceil((y+1)*ry)), where
// rx = srcW/dstW and ry = srcH/dstH. When upscaling the box shrinks to a
// single pixel and Box behaves like Nearest.
func Box(src []uint8, srcW, srcH, dstW, dstH int, r parallel.Runner) []uint8 {
	xs := boxSpans(srcW, dstW)
	ys := boxSpans(srcH, dstH)

	dst := make([]uint8, dstW*dstH*4)
	srcStride := srcW * 4

	r.Run(dstH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			ySpan := ys[y]
			out := dst[y*dstW*4 : (y+1)*dstW*4]

			for x, xSpan := range xs {
				var sum [4]uint64
				for sy := ySpan.lo; sy < ySpan.hi; sy++ {
					row := src[sy*srcStride+xSpan.lo*4 : sy*srcStride+xSpan.hi*4]
					for i := 0; i < len(row); i += 4 {
						sum[0] += uint64(row[i])
						sum[1] += uint64(row[i+1])
						sum[2] += uint64(row[i+2])
						sum[3] += uint64(row[i+3])
					}
				}

				count := float64((ySpan.hi - ySpan.lo) * (xSpan.hi - xSpan.lo))
				o := out[x*4 : x*4+4 : x*4+4]
				for c := range 4 {
					o[c] = toByte(float64(sum[c]) / count)
				}
			}
		}
	})

	return dst
}
