package filter

import (
	"math"
	"sync"
)

// GaussianKernel returns a normalized 1D Gaussian kernel with standard
// deviation sigma. The kernel has 2*ceil(3*sigma)+1 taps, which covers
// 99.7% of the distribution.
//
// For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 || math.IsNaN(sigma) {
		return []float32{1}
	}

	half := KernelRadius(sigma)
	k := make([]float32, 2*half+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	vals := make([]float64, len(k))
	for i := range vals {
		x := float64(i - half)
		vals[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += vals[i]
	}
	for i, v := range vals {
		k[i] = float32(v / sum)
	}
	return k
}

// KernelRadius returns the half-width in taps of the Gaussian kernel for
// sigma, that is ceil(3*sigma). It is 0 for sigma <= 0.
func KernelRadius(sigma float64) int {
	if sigma <= 0 || math.IsNaN(sigma) {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// kernelCache keeps recently built kernels keyed by sigma quantized to 0.01.
type kernelCache struct {
	mu      sync.RWMutex
	kernels map[int][]float32
	maxLen  int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		kernels: make(map[int][]float32),
		maxLen:  maxLen,
	}
}

func (c *kernelCache) get(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))

	c.mu.RLock()
	if k, ok := c.kernels[key]; ok {
		c.mu.RUnlock()
		return k
	}
	c.mu.RUnlock()

	k := GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.kernels) >= c.maxLen {
		// Drop half the entries. Sigmas come from a few config values in
		// practice, so a full LRU is not worth it.
		n := 0
		for key := range c.kernels {
			delete(c.kernels, key)
			n++
			if n >= c.maxLen/2 {
				break
			}
		}
	}
	c.kernels[key] = k
	c.mu.Unlock()

	return k
}

// CachedGaussianKernel returns a shared Gaussian kernel for sigma, rounded
// to two decimals. The returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
