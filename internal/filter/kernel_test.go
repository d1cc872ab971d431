package filter

import (
	"math"
	"testing"
)

func TestGaussianKernelZeroSigma(t *testing.T) {
	for _, sigma := range []float64{0, -5, math.NaN()} {
		k := GaussianKernel(sigma)
		if len(k) != 1 || k[0] != 1 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", sigma, k)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2, 3, 5, 10} {
		var sum float64
		for _, v := range GaussianKernel(sigma) {
			sum += float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("GaussianKernel(%v) sum = %v, want ~1.0", sigma, sum)
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	k := GaussianKernel(2.5)
	n := len(k)
	for i := 0; i < n/2; i++ {
		if k[i] != k[n-1-i] {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v", i, k[i], n-1-i, k[n-1-i])
		}
	}
	for i := 1; i <= n/2; i++ {
		if k[i] < k[i-1] {
			t.Errorf("kernel not increasing toward center at %d", i)
		}
	}
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{0.5, 5},
		{1.0, 7},
		{2.0, 13},
		{5.0, 31},
	}

	for _, tt := range tests {
		if got := len(GaussianKernel(tt.sigma)); got != tt.wantSize {
			t.Errorf("len(GaussianKernel(%v)) = %d, want %d", tt.sigma, got, tt.wantSize)
		}
		if got := 2*KernelRadius(tt.sigma) + 1; got != tt.wantSize {
			t.Errorf("2*KernelRadius(%v)+1 = %d, want %d", tt.sigma, got, tt.wantSize)
		}
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	k1 := CachedGaussianKernel(1.5)
	k2 := CachedGaussianKernel(1.5)
	if &k1[0] != &k2[0] {
		t.Error("CachedGaussianKernel(1.5) rebuilt a cached kernel")
	}

	fresh := GaussianKernel(1.5)
	if len(fresh) != len(k1) {
		t.Fatalf("cached len = %d, want %d", len(k1), len(fresh))
	}
	for i := range fresh {
		if fresh[i] != k1[i] {
			t.Errorf("cached[%d] = %v, want %v", i, k1[i], fresh[i])
		}
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for i := 1; i <= 10; i++ {
		_ = c.get(float64(i) / 10)
	}
	if len(c.kernels) > 4 {
		t.Errorf("cache holds %d kernels, limit is 4", len(c.kernels))
	}
}

func BenchmarkGaussianKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GaussianKernel(5)
	}
}
