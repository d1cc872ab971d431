// Package config loads rescale settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/internal/image"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Size is a target box in pixels.
type Size struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Unsharp holds unsharp-mask parameters. A zero Amount disables it.
type Unsharp struct {
	Sigma  float64 `toml:"sigma" yaml:"sigma"`
	Amount float64 `toml:"amount" yaml:"amount"`
}

// Config is the on-disk configuration of the rescale command. Command-line
// flags override it.
type Config struct {
	Algorithm  string  `toml:"algorithm" yaml:"algorithm"`
	Sharpness  float64 `toml:"sharpness" yaml:"sharpness"`
	Gamma      float64 `toml:"gamma" yaml:"gamma"`
	Unsharp    Unsharp `toml:"unsharp" yaml:"unsharp"`
	KeepAspect bool    `toml:"keep_aspect" yaml:"keep_aspect"`
	Workers    int     `toml:"workers" yaml:"workers"`

	// Quality is the JPEG quality, 1 to 100.
	Quality int `toml:"quality" yaml:"quality"`

	// Format forces the output format ("png", "jpeg", ...). Empty follows
	// the output file extension.
	Format string `toml:"format" yaml:"format"`

	// AutoOrient applies EXIF orientation when decoding.
	AutoOrient bool `toml:"auto_orient" yaml:"auto_orient"`

	// CustomPresets adds named target boxes or overrides built-in ones.
	CustomPresets map[string]Size `toml:"presets" yaml:"presets"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	s := rescale.DefaultSettings()
	return Config{
		Algorithm:  s.Algorithm.String(),
		Sharpness:  s.Sharpness,
		Gamma:      s.Gamma,
		KeepAspect: true,
		Quality:    image.DefaultJPEGQuality,
		AutoOrient: true,
	}
}

// Load reads the file at path, decoding it as TOML (.toml) or YAML (.yaml,
// .yml). Keys missing from the file keep their Default values; unknown keys
// are an error. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.settings(); err != nil {
		return err
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality %d outside [1, 100]", ErrInvalidConfig, c.Quality)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if c.Unsharp.Sigma < 0 {
		return fmt.Errorf("%w: unsharp sigma %v", ErrInvalidConfig, c.Unsharp.Sigma)
	}
	if c.Format != "" {
		f, err := image.ParseFormat(c.Format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if !f.CanEncode() {
			return fmt.Errorf("%w: format %s cannot be written", ErrInvalidConfig, f)
		}
	}
	for name, size := range c.CustomPresets {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: preset with empty name", ErrInvalidConfig)
		}
		if size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("%w: preset %q has size %dx%d", ErrInvalidConfig, name, size.Width, size.Height)
		}
	}
	return nil
}

func (c Config) settings() (rescale.Settings, error) {
	a, err := rescale.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return rescale.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s := rescale.Settings{Algorithm: a, Sharpness: c.Sharpness, Gamma: c.Gamma}
	if err := s.Validate(); err != nil {
		return rescale.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Settings returns the resampling settings. It panics on an invalid
// configuration; call Validate first.
func (c Config) Settings() rescale.Settings {
	s, err := c.settings()
	if err != nil {
		panic(err)
	}
	return s
}

// Options converts the configuration into resize options.
func (c Config) Options() []rescale.Option {
	return []rescale.Option{
		rescale.WithSettings(c.Settings()),
		rescale.WithUnsharpMask(c.Unsharp.Sigma, c.Unsharp.Amount),
		rescale.WithWorkers(c.Workers),
	}
}

// Presets returns the built-in presets with configured ones merged in.
// A configured preset replaces a built-in one of the same name; new names
// follow the built-ins in alphabetical order.
func (c Config) Presets() []rescale.Preset {
	out := rescale.Presets()
	var extra []rescale.Preset
	for name, size := range c.CustomPresets {
		n := strings.ToLower(strings.TrimSpace(name))
		p := rescale.Preset{Name: n, Width: size.Width, Height: size.Height}
		if i := slices.IndexFunc(out, func(b rescale.Preset) bool { return b.Name == n }); i >= 0 {
			out[i] = p
			continue
		}
		extra = append(extra, p)
	}
	slices.SortFunc(extra, func(a, b rescale.Preset) int { return strings.Compare(a.Name, b.Name) })
	return append(out, extra...)
}

// LookupPreset finds a preset by name, ignoring case, among Presets.
func (c Config) LookupPreset(name string) (rescale.Preset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.Presets() {
		if p.Name == n {
			return p, nil
		}
	}
	return rescale.Preset{}, fmt.Errorf("%w: %q", rescale.ErrUnknownPreset, name)
}
