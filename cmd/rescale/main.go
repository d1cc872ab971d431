// Command rescale resizes image files with the rescale resampling engine.
//
// Usage:
//
//	rescale resize photo.jpg -o thumb.png --preset thumbnail --algorithm lanczos
//	rescale resize scan.png -o half.png --scale 0.5 --algorithm box
//	rescale batch *.jpg --out-dir small/ --width 640 --jobs 4
//	rescale algorithms
//	rescale presets --config rescale.toml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rescale:", err)
		os.Exit(1)
	}
}
