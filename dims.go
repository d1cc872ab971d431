package rescale

import (
	"fmt"
	"math"
	"strings"
)

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// FitWidth returns width and the height that keeps the source aspect ratio:
// round(width / (srcW/srcH)), at least 1.
func FitWidth(srcW, srcH, width int) (int, int) {
	aspect := float64(srcW) / float64(srcH)
	return width, max(1, roundHalfUp(float64(width)/aspect))
}

// FitHeight returns the width that keeps the source aspect ratio,
// round(height * (srcW/srcH)) and at least 1, together with height.
func FitHeight(srcW, srcH, height int) (int, int) {
	aspect := float64(srcW) / float64(srcH)
	return max(1, roundHalfUp(float64(height)*aspect)), height
}

// FitBox returns the largest aspect-preserving size that fits inside
// boxW×boxH. The axis needing the smaller scale keeps the box size and the
// other one is derived from it.
func FitBox(srcW, srcH, boxW, boxH int) (int, int) {
	aspect := float64(srcW) / float64(srcH)
	if float64(boxW)/float64(boxH) > aspect {
		return FitHeight(srcW, srcH, boxH)
	}
	return FitWidth(srcW, srcH, boxW)
}

// ScaleDims returns (floor(srcW*scale), floor(srcH*scale)). scale must be
// finite and positive, and both results must be at least 1.
func ScaleDims(srcW, srcH int, scale float64) (int, int, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	w := int(math.Floor(float64(srcW) * scale))
	h := int(math.Floor(float64(srcH) * scale))
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d scaled by %v gives %dx%d",
			ErrInvalidDimensions, srcW, srcH, scale, w, h)
	}
	return w, h, nil
}

// Target describes the wanted output size relative to a source.
//
// Resolution order:
//   - Scale > 0: both axes are scaled (see ScaleDims); Width and Height are
//     ignored.
//   - Width and Height both set: used as is, or fitted inside that box when
//     KeepAspect is set.
//   - Only one of them set: the other follows the source aspect ratio.
//   - Nothing set: the source size.
type Target struct {
	Width      int
	Height     int
	Scale      float64
	KeepAspect bool
}

// Resolve computes the destination size for a srcW×srcH source.
func (t Target) Resolve(srcW, srcH int) (int, int, error) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source %dx%d", ErrInvalidDimensions, srcW, srcH)
	}
	if t.Scale != 0 {
		return ScaleDims(srcW, srcH, t.Scale)
	}
	if t.Width < 0 || t.Height < 0 {
		return 0, 0, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, t.Width, t.Height)
	}

	switch {
	case t.Width > 0 && t.Height > 0:
		if t.KeepAspect {
			w, h := FitBox(srcW, srcH, t.Width, t.Height)
			return w, h, nil
		}
		return t.Width, t.Height, nil
	case t.Width > 0:
		w, h := FitWidth(srcW, srcH, t.Width)
		return w, h, nil
	case t.Height > 0:
		w, h := FitHeight(srcW, srcH, t.Height)
		return w, h, nil
	default:
		return srcW, srcH, nil
	}
}

// Preset is a named target box.
type Preset struct {
	Name   string
	Width  int
	Height int
}

var builtinPresets = []Preset{
	{Name: "thumbnail", Width: 150, Height: 150},
	{Name: "small", Width: 640, Height: 480},
	{Name: "medium", Width: 1280, Height: 720},
	{Name: "hd", Width: 1920, Height: 1080},
	{Name: "4k", Width: 3840, Height: 2160},
}

// Presets returns the built-in presets, smallest first.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	copy(out, builtinPresets)
	return out
}

// LookupPreset finds a built-in preset by name, ignoring case.
func LookupPreset(name string) (Preset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range builtinPresets {
		if p.Name == n {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Fit returns the target size for a srcW×srcH source. With keepAspect the
// result is FitBox(srcW, srcH, p.Width, p.Height); otherwise the preset size
// itself.
func (p Preset) Fit(srcW, srcH int, keepAspect bool) (int, int) {
	if !keepAspect {
		return p.Width, p.Height
	}
	return FitBox(srcW, srcH, p.Width, p.Height)
}

// Target returns the preset as a Target.
func (p Preset) Target(keepAspect bool) Target {
	return Target{Width: p.Width, Height: p.Height, KeepAspect: keepAspect}
}
