// Package rescale resamples RGBA raster images to arbitrary target sizes.
//
// # Overview
//
// rescale takes a decoded image as a tightly packed RGBA8 buffer and
// produces a new buffer at the requested resolution. Decoding, encoding and
// display are left to the caller; the cmd/rescale tool shows one way to wire
// them up.
//
// # Quick Start
//
//	import "github.com/gogpu/rescale"
//
//	src := &rescale.Buffer{Pix: pix, Width: 1920, Height: 1080}
//
//	// Downscale with the default algorithm (Lanczos3)
//	dst, err := rescale.Resize(src, 640, 360)
//
//	// Pick an algorithm and post-process
//	dst, err = rescale.Resize(src, 640, 360,
//	    rescale.WithAlgorithm(rescale.Mitchell),
//	    rescale.WithGamma(1.2),
//	)
//
// # Algorithms
//
//   - NearestNeighbor: copies the nearest source pixel. Hard edges, no blending.
//   - Bilinear: weighted blend of the 2x2 neighborhood.
//   - Bicubic: 4x4 cubic convolution (a = -0.5). Sharper than bilinear.
//   - Mitchell: 4x4 Mitchell-Netravali cubic (B = C = 1/3). Balances
//     blurring and ringing.
//   - Lanczos3: 6x6 windowed sinc. Sharpest result, may ring near hard edges.
//     Supports an extra sharpness blend.
//   - Box: averages every source pixel covered by the destination pixel.
//     Fast, alias-free downscaling.
//
// All channels, alpha included, go through the same filter. The source
// buffer is never modified; every call allocates its result.
//
// # Post-processing
//
// After resampling, an optional unsharp mask and then gamma correction are
// applied. Gamma 1.0 is a no-op.
//
// # Target Sizes
//
// Target, FitWidth, FitHeight, ScaleDims and the named presets derive target
// dimensions from the source size the way an editing UI does: aspect-locked
// width or height edits, a uniform scale factor, or a preset box.
//
// # Concurrency
//
// Destination rows are split into bands and computed on a shared worker
// pool. Output does not depend on the worker count. All exported functions
// are safe for concurrent use.
package rescale
