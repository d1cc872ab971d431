package main

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits in counts ("2,073,600").
var printer = message.NewPrinter(language.English)

// printSummary writes the one-line report for a processed file.
func printSummary(w io.Writer, r result) {
	ratio := 0.0
	if r.outBytes > 0 {
		ratio = float64(r.inBytes) / float64(r.outBytes)
	}
	src := fmt.Sprintf("%d×%d", r.srcW, r.srcH)
	dst := fmt.Sprintf("%d×%d", r.dstW, r.dstH)
	printer.Fprintf(w, "%s -> %s: %s -> %s (%d px), %s, %.2f ms, %d bytes, ratio %.2f\n",
		r.input, r.output, src, dst,
		r.dstW*r.dstH,
		r.algorithm.String(),
		float64(r.elapsed)/float64(time.Millisecond),
		r.outBytes,
		ratio)
}
