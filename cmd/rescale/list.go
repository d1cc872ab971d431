package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/rescale"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List resampling algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTAPS\tDESCRIPTION")
			for _, alg := range rescale.Algorithms() {
				taps := "-"
				if n := alg.Taps(); n > 0 {
					taps = fmt.Sprintf("%dx%d", n, n)
				}
				name := alg.String()
				if alg == rescale.DefaultAlgorithm {
					name += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, taps, alg.Description())
			}
			return tw.Flush()
		},
	}
}

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List named target sizes",
		Long: `List built-in presets and those defined in the config file. With
--keep-aspect (the default) a preset is a bounding box: the side that needs
the smaller scale is kept and the other follows the source aspect ratio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWIDTH\tHEIGHT")
			for _, p := range a.cfg.Presets() {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Name, p.Width, p.Height)
			}
			return tw.Flush()
		},
	}
}
