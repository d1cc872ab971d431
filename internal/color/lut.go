// Package color provides gamma correction through lookup tables.
//
// A power-law remap of an 8-bit channel has only 256 possible inputs, so the
// curve is evaluated once per gamma into a 256-entry table and every pixel
// becomes a table lookup instead of a math.Pow call.
package color

import (
	"math"
	"sync"
)

// GammaLUT maps an 8-bit channel value through out = (in/255)^(1/gamma) * 255.
type GammaLUT [256]uint8

// NewGammaLUT builds the table for gamma. Each entry is rounded to the
// nearest integer (half up) and clamped to [0, 255]. gamma must be finite
// and positive; gamma == 1 yields the identity table.
func NewGammaLUT(gamma float64) *GammaLUT {
	lut := new(GammaLUT)
	inv := 1 / gamma
	for i := range lut {
		lut[i] = GammaSlow(uint8(i), inv)
	}
	return lut
}

// GammaSlow evaluates a single channel with math.Pow. inv is 1/gamma.
//
// This is the reference implementation for the tables.
func GammaSlow(v uint8, inv float64) uint8 {
	out := math.Pow(float64(v)/255, inv)*255 + 0.5
	if out <= 0 || out != out {
		return 0
	}
	if out >= 255 {
		return 255
	}
	//nolint:gosec // G115: out is clamped to [0,255) above
	return uint8(out)
}

// Apply remaps the R, G and B channels of an RGBA8 pixel slice in place.
// Alpha is left untouched.
func (lut *GammaLUT) Apply(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
}

// lutCache keeps tables for recently used gamma values. Gamma usually comes
// from a slider or a config file, so a handful of distinct values recur.
type lutCache struct {
	mu     sync.RWMutex
	tables map[float64]*GammaLUT
	maxLen int
}

var defaultLUTCache = &lutCache{
	tables: make(map[float64]*GammaLUT),
	maxLen: 32,
}

func (c *lutCache) get(gamma float64) *GammaLUT {
	c.mu.RLock()
	if lut, ok := c.tables[gamma]; ok {
		c.mu.RUnlock()
		return lut
	}
	c.mu.RUnlock()

	lut := NewGammaLUT(gamma)

	c.mu.Lock()
	if len(c.tables) >= c.maxLen {
		clear(c.tables)
	}
	c.tables[gamma] = lut
	c.mu.Unlock()

	return lut
}

// CachedGammaLUT returns a shared, read-only table for gamma.
// Callers must not modify the returned table.
func CachedGammaLUT(gamma float64) *GammaLUT {
	return defaultLUTCache.get(gamma)
}
