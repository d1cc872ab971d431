package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/internal/config"
	"github.com/gogpu/rescale/internal/image"
)

// job is the resolved work for one or more files.
type job struct {
	cfg    config.Config
	target rescale.Target
}

// result describes one processed file.
type result struct {
	input      string
	output     string
	algorithm  rescale.Algorithm
	srcW, srcH int
	dstW, dstH int
	inBytes    int64
	outBytes   int64
	elapsed    time.Duration
}

// outputFormat returns the configured format or the one implied by path.
func (j *job) outputFormat(path string) (image.Format, error) {
	if j.cfg.Format != "" {
		return image.ParseFormat(j.cfg.Format)
	}
	f, err := image.FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	if !f.CanEncode() {
		return 0, fmt.Errorf("%w: cannot encode %s, pass --format", image.ErrUnsupportedFormat, f)
	}
	return f, nil
}

// run resizes the image at in and writes it to out.
func (a *app) run(j *job, in, out string) (result, error) {
	res := result{input: in, output: out, algorithm: j.cfg.Settings().Algorithm}

	format, err := j.outputFormat(out)
	if err != nil {
		return res, err
	}

	info, err := os.Stat(in)
	if err != nil {
		return res, err
	}
	res.inBytes = info.Size()

	img, err := image.Load(in, image.DecodeOptions{AutoOrient: j.cfg.AutoOrient})
	if err != nil {
		return res, err
	}
	pix, w, h := image.Pixels(img)
	src := &rescale.Buffer{Pix: pix, Width: w, Height: h}
	res.srcW, res.srcH = w, h

	opts := append(j.cfg.Options(), rescale.WithObserver(newLogObserver(a.log, in)))

	start := time.Now()
	dst, err := rescale.ResizeTarget(src, j.target, opts...)
	if err != nil {
		return res, fmt.Errorf("%s: %w", in, err)
	}
	res.elapsed = time.Since(start)
	res.dstW, res.dstH = dst.Width, dst.Height

	n, err := writeImage(out, dst, format, j.cfg.Quality)
	if err != nil {
		return res, err
	}
	res.outBytes = n
	return res, nil
}

// writeImage encodes b into a new file at path and returns its size.
func writeImage(path string, b *rescale.Buffer, f image.Format, quality int) (int64, error) {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	cw := &countingWriter{w: file}
	img := image.FromPixels(b.Pix, b.Width, b.Height)
	if err := image.Encode(cw, img, f, image.EncodeOptions{Quality: quality}); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return 0, err
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// batchOutputPath maps an input file to its path inside dir. The extension
// follows the forced format, or is kept when the input format can be
// encoded, or becomes .png.
func batchOutputPath(in, dir, forced string) string {
	base := filepath.Base(in)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if forced != "" {
		if f, err := image.ParseFormat(forced); err == nil {
			return filepath.Join(dir, stem+f.Extension())
		}
	}
	if f, err := image.FormatFromPath(in); err != nil || !f.CanEncode() {
		ext = image.FormatPNG.Extension()
	}
	return filepath.Join(dir, stem+ext)
}

// batchOutputPaths maps every input to its output path inside dir. Two
// inputs mapping to the same output (photo.png from two directories) are an
// error: their writers would race on one file.
func batchOutputPaths(inputs []string, dir, forced string) ([]string, error) {
	outs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := batchOutputPath(in, dir, forced)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, in, out)
		}
		seen[out] = in
		outs[i] = out
	}
	return outs, nil
}
