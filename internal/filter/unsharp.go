package filter

import "github.com/gogpu/rescale/internal/parallel"

// UnsharpMask sharpens the RGBA8 image pix (w×h) and returns a new buffer:
//
//	out = orig + amount*(orig - blur(orig, sigma))
//
// applied to R, G and B. Alpha is copied unchanged. sigma <= 0 or
// amount == 0 returns a plain copy.
func UnsharpMask(pix []uint8, w, h int, sigma, amount float64, r parallel.Runner) []uint8 {
	out := make([]uint8, len(pix))
	copy(out, pix)
	if sigma <= 0 || amount == 0 || len(pix) == 0 {
		return out
	}

	blurred := getFloatBuffer(len(pix))
	defer putFloatBuffer(blurred)
	blurFloat(pix, blurred, w, h, CachedGaussianKernel(sigma), r)

	a := float32(amount)
	stride := w * 4
	r.Run(h, func(y0, y1 int) {
		for i := y0 * stride; i < y1*stride; i += 4 {
			for c := range 3 {
				orig := float32(pix[i+c])
				out[i+c] = clampUint8(orig + a*(orig-blurred[i+c]))
			}
		}
	})
	return out
}
