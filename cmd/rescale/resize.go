package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newResizeCmd(a *app) *cobra.Command {
	var (
		flags  resizeFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "resize <input> -o <output>",
		Short: "Resize a single image",
		Example: `  rescale resize photo.jpg -o photo_small.jpg --width 800
  rescale resize icon.png -o icon@2x.png --scale 2 --algorithm nearest
  rescale resize scan.tif -o scan.png --preset hd --gamma 1.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.merge(cmd.Flags(), a.cfg)
			if err != nil {
				return err
			}
			target, err := flags.target(cfg)
			if err != nil {
				return err
			}

			j := &job{cfg: cfg, target: target}
			res, err := a.run(j, args[0], output)
			if err != nil {
				a.log.WithError(err).WithField("file", args[0]).Error("Resize failed")
				return err
			}

			a.log.WithFields(logrus.Fields{
				"input":     res.input,
				"output":    res.output,
				"algorithm": res.algorithm.String(),
				"elapsed":   res.elapsed.String(),
			}).Info("Image resized")
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
