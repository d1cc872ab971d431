package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		flags  resizeFlags
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "batch <input>... --out-dir <dir>",
		Short: "Resize many images concurrently",
		Long: `Resize every input file with the same settings and write the results
into --out-dir under their original names. Inputs that would share an output
name are rejected before anything is written. Processing stops at the first
failure; files already written are kept.`,
		Example: `  rescale batch photos/*.jpg --out-dir thumbs --preset thumbnail --jobs 4`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.merge(cmd.Flags(), a.cfg)
			if err != nil {
				return err
			}
			target, err := flags.target(cfg)
			if err != nil {
				return err
			}
			outputs, err := batchOutputPaths(args, outDir, cfg.Format)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o750); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}

			j := &job{cfg: cfg, target: target}
			out := cmd.OutOrStdout()
			var mu sync.Mutex

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, in := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					res, err := a.run(j, in, outputs[i])
					if err != nil {
						a.log.WithError(err).WithField("file", in).Error("Resize failed")
						return err
					}
					mu.Lock()
					printSummary(out, res)
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{
				"files": len(args),
				"jobs":  jobs,
			}).Info("Batch finished")
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed at once, 0 uses all CPUs")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}
