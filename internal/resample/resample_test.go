package resample

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/gogpu/rescale/internal/kernel"
	"github.com/gogpu/rescale/internal/parallel"
)

// quad returns the 2x2 red/green/blue/yellow test image.
func quad() []uint8 {
	return []uint8{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 0, 255,
	}
}

// noise returns a deterministic pseudo-random RGBA image.
func noise(w, h int, seed uint32) []uint8 {
	pix := make([]uint8, w*h*4)
	s := seed
	for i := range pix {
		s = s*1664525 + 1013904223
		pix[i] = uint8(s >> 24)
	}
	return pix
}

func fill(w, h int, r, g, b, a uint8) []uint8 {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

func pixel(pix []uint8, w, x, y int) [4]uint8 {
	i := (y*w + x) * 4
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

type resampler func(src []uint8, srcW, srcH, dstW, dstH int, r parallel.Runner) []uint8

func all() map[string]resampler {
	conv := func(f Filter, sharpness float64) resampler {
		return func(src []uint8, srcW, srcH, dstW, dstH int, r parallel.Runner) []uint8 {
			return Convolve(src, srcW, srcH, dstW, dstH, f, sharpness, r)
		}
	}
	return map[string]resampler{
		"nearest":          Nearest,
		"box":              Box,
		"bilinear":         conv(Bilinear, 0),
		"bicubic":          conv(Bicubic, 0),
		"mitchell":         conv(Mitchell, 0),
		"lanczos3":         conv(Lanczos3, 0),
		"lanczos3-sharpen": conv(Lanczos3, 0.8),
	}
}

func TestNearest_UpscaleQuad(t *testing.T) {
	dst := Nearest(quad(), 2, 2, 4, 4, parallel.Serial{})

	want := map[[2]int][4]uint8{
		{0, 0}: {255, 0, 0, 255},
		{2, 0}: {0, 255, 0, 255},
		{0, 2}: {0, 0, 255, 255},
		{2, 2}: {255, 255, 0, 255},
	}
	for y := range 4 {
		for x := range 4 {
			q := [2]int{x / 2 * 2, y / 2 * 2}
			if got := pixel(dst, 4, x, y); got != want[q] {
				t.Errorf("dst(%d,%d) = %v, want %v", x, y, got, want[q])
			}
		}
	}
}

func TestNearest_Identity(t *testing.T) {
	src := noise(13, 7, 1)
	dst := Nearest(src, 13, 7, 13, 7, parallel.Serial{})
	if !bytes.Equal(src, dst) {
		t.Error("nearest resample to the same size is not an identity")
	}
}

func TestBox_DownscaleAverage(t *testing.T) {
	src := []uint8{
		0, 0, 0, 255,
		100, 0, 0, 255,
		200, 0, 0, 255,
		255, 0, 0, 255,
	}
	dst := Box(src, 4, 1, 1, 1, parallel.Serial{})

	if dst[0] != 139 {
		t.Errorf("R = %d, want 139 (round(555/4))", dst[0])
	}
	if dst[3] != 255 {
		t.Errorf("A = %d, want 255", dst[3])
	}
}

func TestBox_UpscaleDegeneratesToSinglePixels(t *testing.T) {
	dst := Box(quad(), 2, 2, 4, 4, parallel.Serial{})
	want := Nearest(quad(), 2, 2, 4, 4, parallel.Serial{})
	if !bytes.Equal(dst, want) {
		t.Errorf("2x box upscale = %v, want nearest result %v", dst, want)
	}
}

func TestBilinear_UniformGray(t *testing.T) {
	src := fill(2, 2, 128, 128, 128, 255)

	for _, size := range [][2]int{{1, 1}, {2, 2}, {3, 5}, {16, 9}, {64, 64}} {
		dst := Convolve(src, 2, 2, size[0], size[1], Bilinear, 0, parallel.Serial{})
		for i := 0; i < len(dst); i += 4 {
			if dst[i] != 128 || dst[i+1] != 128 || dst[i+2] != 128 || dst[i+3] != 255 {
				t.Fatalf("%dx%d: pixel %d = %v, want (128,128,128,255)", size[0], size[1], i/4, dst[i:i+4])
			}
		}
	}
}

func TestBilinear_SingleColumnSource(t *testing.T) {
	src := []uint8{10, 20, 30, 40, 50, 60, 70, 80}
	dst := Convolve(src, 1, 2, 3, 2, Bilinear, 0, parallel.Serial{})

	for x := range 3 {
		if got := pixel(dst, 3, x, 0); got != [4]uint8{10, 20, 30, 40} {
			t.Errorf("dst(%d,0) = %v, want [10 20 30 40]", x, got)
		}
	}
}

func TestAll_OutputLength(t *testing.T) {
	src := noise(9, 5, 2)
	for name, fn := range all() {
		for _, size := range [][2]int{{1, 1}, {4, 4}, {9, 5}, {27, 3}, {2, 40}} {
			dst := fn(src, 9, 5, size[0], size[1], parallel.Serial{})
			if len(dst) != size[0]*size[1]*4 {
				t.Errorf("%s %dx%d: len = %d, want %d", name, size[0], size[1], len(dst), size[0]*size[1]*4)
			}
		}
	}
}

func TestAll_Deterministic(t *testing.T) {
	src := noise(31, 17, 3)
	for name, fn := range all() {
		a := fn(src, 31, 17, 50, 23, parallel.Serial{})
		b := fn(src, 31, 17, 50, 23, parallel.Serial{})
		if !bytes.Equal(a, b) {
			t.Errorf("%s: two runs differ", name)
		}
	}
}

func TestAll_ParallelMatchesSerial(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	src := noise(40, 30, 4)
	for name, fn := range all() {
		serial := fn(src, 40, 30, 97, 71, parallel.Serial{})
		par := fn(src, 40, 30, 97, 71, parallel.Bands{Pool: pool})
		if !bytes.Equal(serial, par) {
			t.Errorf("%s: parallel output differs from serial", name)
		}
	}
}

func TestAll_SourceUnchanged(t *testing.T) {
	src := noise(12, 12, 5)
	orig := append([]uint8(nil), src...)
	for name, fn := range all() {
		_ = fn(src, 12, 12, 7, 19, parallel.Serial{})
		if !bytes.Equal(src, orig) {
			t.Fatalf("%s modified its source", name)
		}
	}
}

func TestAll_OpaqueAlphaPreserved(t *testing.T) {
	src := noise(10, 10, 6)
	for i := 3; i < len(src); i += 4 {
		src[i] = 255
	}
	for name, fn := range all() {
		dst := fn(src, 10, 10, 23, 4, parallel.Serial{})
		for i := 3; i < len(dst); i += 4 {
			if dst[i] != 255 {
				t.Errorf("%s: alpha at pixel %d = %d, want 255", name, i/4, dst[i])
				break
			}
		}
	}
}

// A hard 0|255 step makes cubic and Lanczos kernels overshoot on both
// sides of the edge. Overshoot must clamp, never wrap around.
func TestConvolve_RingingIsClamped(t *testing.T) {
	src := make([]uint8, 8*4)
	for x := 4; x < 8; x++ {
		src[x*4], src[x*4+1], src[x*4+2], src[x*4+3] = 255, 255, 255, 255
	}

	for _, f := range []Filter{Bicubic, Mitchell, Lanczos3} {
		const dstW = 37
		dst := Convolve(src, 8, 1, dstW, 1, f, 0, parallel.Serial{})

		var over, under bool
		for x := range dstW {
			v := rawValue(src, 8, dstW, x, f)
			switch {
			case v > 255.5:
				over = true
				if dst[x*4] != 255 {
					t.Errorf("%s: x=%d raw %.2f stored as %d, want 255", f.Name, x, v, dst[x*4])
				}
			case v < -0.5:
				under = true
				if dst[x*4] != 0 {
					t.Errorf("%s: x=%d raw %.2f stored as %d, want 0", f.Name, x, v, dst[x*4])
				}
			}
		}
		if f.Name != "mitchell" && (!over || !under) {
			t.Errorf("%s: step edge produced no ringing (over=%v under=%v)", f.Name, over, under)
		}
	}
}

// rawValue evaluates the unclamped red channel of a 1-row resample.
func rawValue(src []uint8, srcW, dstW, x int, f Filter) float64 {
	pos := f.Mapping.Position(x, srcW, dstW)
	r := f.Kernel.Radius()
	start := int(math.Floor(pos)) - r + 1
	var sum, wsum float64
	for k := 0; k < 2*r; k++ {
		xi := clampInt(start+k, 0, srcW-1)
		w := f.Kernel.At(pos - float64(xi))
		sum += float64(src[xi*4]) * w
		wsum += w
	}
	return sum / wsum
}

func TestConvolve_ZeroWeightSumDefaultsToOne(t *testing.T) {
	zero := Filter{
		Name:      "zero",
		Kernel:    kernel.Kernel{Name: "zero", Support: 2, At: func(float64) float64 { return 0 }},
		Mapping:   CornerAligned,
		Boundary:  SnapToEdge,
		Normalize: true,
	}
	dst := Convolve(fill(4, 4, 200, 100, 50, 255), 4, 4, 3, 3, zero, 0, parallel.Serial{})
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestLanczos_SharpnessZeroMatchesDisabled(t *testing.T) {
	src := noise(20, 14, 7)
	plain := Lanczos3
	plain.Sharpen = false

	a := Convolve(src, 20, 14, 33, 9, Lanczos3, 0, parallel.Serial{})
	b := Convolve(src, 20, 14, 33, 9, plain, 0.75, parallel.Serial{})
	c := Convolve(src, 20, 14, 33, 9, plain, 0, parallel.Serial{})

	if !bytes.Equal(a, b) || !bytes.Equal(a, c) {
		t.Error("sharpness 0 must match the path without sharpening")
	}
}

func TestLanczos_FullSharpnessPullsToCenterAndKeepsAlpha(t *testing.T) {
	src := noise(12, 12, 8)
	soft := Convolve(src, 12, 12, 5, 5, Lanczos3, 0, parallel.Serial{})
	sharp := Convolve(src, 12, 12, 5, 5, Lanczos3, 1, parallel.Serial{})

	xw := newAxisWeights(12, 5, Lanczos3)
	yw := newAxisWeights(12, 5, Lanczos3)
	for y := range 5 {
		for x := range 5 {
			center := pixel(src, 12, xw.center[x], yw.center[y])
			got := pixel(sharp, 5, x, y)
			for c := range 3 {
				if got[c] != center[c] {
					t.Errorf("dst(%d,%d)[%d] = %d, want center sample %d", x, y, c, got[c], center[c])
				}
			}
			if got[3] != pixel(soft, 5, x, y)[3] {
				t.Errorf("dst(%d,%d) alpha changed by sharpening", x, y)
			}
		}
	}
}

// reference is a direct per-pixel transcription of the kernel resampler
// definition, with no weight tables.
func reference(src []uint8, srcW, srcH, dstW, dstH int, f Filter, sharpness float64) []uint8 {
	dst := make([]uint8, dstW*dstH*4)
	r := f.Kernel.Radius()
	for y := range dstH {
		for x := range dstW {
			sx := f.Mapping.Position(x, srcW, dstW)
			sy := f.Mapping.Position(y, srcH, dstH)
			x0 := int(math.Floor(sx)) - r + 1
			y0 := int(math.Floor(sy)) - r + 1
			for c := range 4 {
				var sum, wsum float64
				for ky := 0; ky < 2*r; ky++ {
					for kx := 0; kx < 2*r; kx++ {
						xi := clampInt(x0+kx, 0, srcW-1)
						yi := clampInt(y0+ky, 0, srcH-1)
						w := f.Kernel.At(sx-float64(xi)) * f.Kernel.At(sy-float64(yi))
						sum += float64(src[(yi*srcW+xi)*4+c]) * w
						wsum += w
					}
				}
				if wsum == 0 {
					wsum = 1
				}
				v := sum / wsum
				if f.Sharpen && sharpness > 0 && c < 3 {
					cx := clampInt(int(math.Floor(sx)), 0, srcW-1)
					cy := clampInt(int(math.Floor(sy)), 0, srcH-1)
					v += (float64(src[(cy*srcW+cx)*4+c]) - v) * sharpness
				}
				dst[(y*dstW+x)*4+c] = toByte(v)
			}
		}
	}
	return dst
}

func TestConvolve_MatchesReference(t *testing.T) {
	src := noise(11, 9, 9)
	sizes := [][2]int{{5, 4}, {11, 9}, {23, 31}, {1, 1}, {3, 17}}

	for _, f := range []Filter{Bicubic, Mitchell, Lanczos3} {
		for _, sharpness := range []float64{0, 0.5} {
			for _, size := range sizes {
				name := fmt.Sprintf("%s/s%.1f/%dx%d", f.Name, sharpness, size[0], size[1])
				t.Run(name, func(t *testing.T) {
					got := Convolve(src, 11, 9, size[0], size[1], f, sharpness, parallel.Serial{})
					want := reference(src, 11, 9, size[0], size[1], f, sharpness)
					if !bytes.Equal(got, want) {
						t.Errorf("Convolve differs from direct evaluation")
					}
				})
			}
		}
	}
}

func TestBilinear_MatchesFormula(t *testing.T) {
	// Sizes chosen so no channel lands on a .5 rounding tie, which keeps the
	// comparison exact under fused multiply-add.
	src := noise(7, 6, 10)
	const dstW, dstH = 13, 11
	dst := Convolve(src, 7, 6, dstW, dstH, Bilinear, 0, parallel.Serial{})

	xr := float64(7-1) / dstW
	yr := float64(6-1) / dstH
	for y := range dstH {
		for x := range dstW {
			sx, sy := float64(x)*xr, float64(y)*yr
			x1, y1 := int(math.Floor(sx)), int(math.Floor(sy))
			x2, y2 := min(x1+1, 6), min(y1+1, 5)
			dx, dy := sx-float64(x1), sy-float64(y1)
			for c := range 4 {
				p1 := float64(src[(y1*7+x1)*4+c])
				p2 := float64(src[(y1*7+x2)*4+c])
				p3 := float64(src[(y2*7+x1)*4+c])
				p4 := float64(src[(y2*7+x2)*4+c])
				v := (1-dx)*(1-dy)*p1 + dx*(1-dy)*p2 + (1-dx)*dy*p3 + dx*dy*p4
				want := uint8(math.Round(v))
				if got := dst[(y*dstW+x)*4+c]; got != want {
					t.Errorf("dst(%d,%d)[%d] = %d, want %d", x, y, c, got, want)
				}
			}
		}
	}
}

func TestMapping_Position(t *testing.T) {
	tests := []struct {
		m            Mapping
		i, src, dst  int
		want         float64
	}{
		{EdgeAligned, 3, 4, 8, 1.5},
		{CornerAligned, 3, 5, 8, 1.5},
		{PixelCenter, 0, 4, 2, 1},
		{PixelCenter, 1, 4, 2, 3},
	}
	for _, tt := range tests {
		if got := tt.m.Position(tt.i, tt.src, tt.dst); got != tt.want {
			t.Errorf("%v.Position(%d, %d, %d) = %v, want %v", tt.m, tt.i, tt.src, tt.dst, got, tt.want)
		}
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0.49, 0},
		{0.5, 1},
		{138.75, 139},
		{254.5, 255},
		{300, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := toByte(tt.in); got != tt.want {
			t.Errorf("toByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func BenchmarkResample(b *testing.B) {
	src := noise(640, 480, 11)
	pool := parallel.NewPool(0)
	defer pool.Close()

	for name, fn := range all() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = fn(src, 640, 480, 1280, 720, parallel.Bands{Pool: pool})
			}
		})
	}
}
