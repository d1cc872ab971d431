package color

import "testing"

// BenchmarkGamma_MathPow benchmarks per-pixel math.Pow evaluation.
func BenchmarkGamma_MathPow(b *testing.B) {
	pix := make([]uint8, 1920*4)
	for i := range pix {
		pix[i] = uint8(i)
	}
	inv := 1 / 2.2
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j+3 < len(pix); j += 4 {
			pix[j] = GammaSlow(pix[j], inv)
			pix[j+1] = GammaSlow(pix[j+1], inv)
			pix[j+2] = GammaSlow(pix[j+2], inv)
		}
	}
}

// BenchmarkGamma_LUT benchmarks the table lookup on one 1080p row.
func BenchmarkGamma_LUT(b *testing.B) {
	pix := make([]uint8, 1920*4)
	for i := range pix {
		pix[i] = uint8(i)
	}
	lut := CachedGammaLUT(2.2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lut.Apply(pix)
	}
}
