package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/internal/config"
)

// resizeFlags are the flags shared by resize and batch.
type resizeFlags struct {
	algorithm  string
	width      int
	height     int
	scale      float64
	keepAspect bool
	preset     string

	sharpness     float64
	gamma         float64
	unsharpSigma  float64
	unsharpAmount float64

	quality int
	format  string
	workers int
}

func (f *resizeFlags) register(fs *pflag.FlagSet) {
	def := config.Default()

	fs.StringVarP(&f.algorithm, "algorithm", "a", def.Algorithm, "resampling algorithm (see 'rescale algorithms')")
	fs.IntVarP(&f.width, "width", "W", 0, "target width in pixels")
	fs.IntVarP(&f.height, "height", "H", 0, "target height in pixels")
	fs.Float64VarP(&f.scale, "scale", "s", 0, "uniform scale factor, overrides width and height")
	fs.BoolVar(&f.keepAspect, "keep-aspect", def.KeepAspect, "keep the source aspect ratio when both width and height are set")
	fs.StringVarP(&f.preset, "preset", "p", "", "named target size (see 'rescale presets')")

	fs.Float64Var(&f.sharpness, "sharpness", def.Sharpness, "lanczos sharpness blend, 0 disables")
	fs.Float64Var(&f.gamma, "gamma", def.Gamma, "gamma correction, 1.0 disables")
	fs.Float64Var(&f.unsharpSigma, "unsharp-sigma", 0, "unsharp mask blur radius (sigma)")
	fs.Float64Var(&f.unsharpAmount, "unsharp-amount", 0, "unsharp mask strength, 0 disables")

	fs.IntVarP(&f.quality, "quality", "q", def.Quality, "JPEG quality (1-100)")
	fs.StringVarP(&f.format, "format", "f", "", "output format (png, jpeg, gif, bmp, tiff); default follows the output extension")
	fs.IntVar(&f.workers, "workers", 0, "resampling goroutines, 0 uses all CPUs")
}

// merge returns cfg with every flag the user set explicitly applied on top.
func (f *resizeFlags) merge(fs *pflag.FlagSet, cfg config.Config) (config.Config, error) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("algorithm", func() { cfg.Algorithm = f.algorithm })
	set("keep-aspect", func() { cfg.KeepAspect = f.keepAspect })
	set("sharpness", func() { cfg.Sharpness = f.sharpness })
	set("gamma", func() { cfg.Gamma = f.gamma })
	set("unsharp-sigma", func() { cfg.Unsharp.Sigma = f.unsharpSigma })
	set("unsharp-amount", func() { cfg.Unsharp.Amount = f.unsharpAmount })
	set("quality", func() { cfg.Quality = f.quality })
	set("format", func() { cfg.Format = f.format })
	set("workers", func() { cfg.Workers = f.workers })

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// target builds the size request. A preset wins over width and height; a
// scale wins over everything.
func (f *resizeFlags) target(cfg config.Config) (rescale.Target, error) {
	if f.scale != 0 {
		return rescale.Target{Scale: f.scale}, nil
	}
	if f.preset != "" {
		p, err := cfg.LookupPreset(f.preset)
		if err != nil {
			return rescale.Target{}, err
		}
		return p.Target(cfg.KeepAspect), nil
	}
	if f.width == 0 && f.height == 0 {
		return rescale.Target{}, fmt.Errorf("no target size: set --width, --height, --scale or --preset")
	}
	return rescale.Target{Width: f.width, Height: f.height, KeepAspect: cfg.KeepAspect}, nil
}
