// Package filter provides spatial filters applied after resampling:
//   - Gaussian blur (separable, edge-clamped)
//   - Unsharp mask
//
// Filters take tightly packed RGBA8 buffers, never modify their input, and
// split rows across a parallel.Runner.
package filter
