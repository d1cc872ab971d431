package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gogpu/rescale"
	"github.com/gogpu/rescale/internal/config"
)

const appVersion = "0.1.0"

// app is the state shared by all subcommands, set up before any of them
// runs.
type app struct {
	stdout io.Writer
	stderr io.Writer

	debug      bool
	configPath string

	log *logrus.Logger
	cfg config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "rescale",
		Short:         "Resize images with selectable resampling filters",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(
		newResizeCmd(a),
		newBatchCmd(a),
		newAlgorithmsCmd(),
		newPresetsCmd(a),
	)
	return root
}

// setup initializes logging and loads the configuration.
func (a *app) setup() error {
	a.log = initLogger(a.debug, a.stderr)
	rescale.SetLogger(newSlogLogger(a.log))

	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			a.log.WithError(err).Error("Loading config failed")
			return err
		}
		a.cfg = cfg
		a.log.WithField("path", a.configPath).Debug("Config loaded")
	}
	return nil
}
