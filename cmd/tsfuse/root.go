package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/tsfuse/config"
	"github.com/arloliu/tsfuse/internal/logging"
	"github.com/arloliu/tsfuse/internal/metrics"
	"github.com/arloliu/tsfuse/linestore"
)

// app holds the state shared by all subcommands.
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string

	stdout io.Writer
	stderr io.Writer

	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "tsfuse",
		Short: "Fuse independently sampled sensor logs into one time-aligned table",
		Long: `tsfuse merges delimited time-series files on their numeric key column,
rewrites columns (clock time to seconds, elapsed time, spherical coordinates)
and trims or truncates the result.

Settings come from the optional --config YAML file, overlaid by TSFUSE_*
environment variables, overlaid by flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.flushMetrics()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: json or text")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus counters to this file after a successful command")

	root.AddCommand(
		a.newSensorsCmd(),
		a.newMergeCmd(),
		a.newConcatCmd(),
		a.newColumnCmd(),
		a.newSphericalCmd(),
		a.newTrimCmd(),
		a.newHeadCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, a.stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.metrics = metrics.New()

	return nil
}

func (a *app) flushMetrics() error {
	if a.metricsFile == "" || a.metrics == nil {
		return nil
	}

	return a.metrics.WriteTextfile(a.metricsFile)
}

// fileFlags are the flags shared by the file-level commands.
type fileFlags struct {
	dir string
	sep string
	out string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", ".", "directory that input and output names are relative to")
	cmd.Flags().StringVar(&f.sep, "sep", "", "cell separator (default from configuration)")
	cmd.Flags().StringVarP(&f.out, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
}

func (a *app) store(f *fileFlags) (*linestore.Store, string, error) {
	sep := f.sep
	if sep == "" {
		sep = a.cfg.Separator
	}
	s, err := linestore.New(f.dir)
	if err != nil {
		return nil, "", err
	}

	return s, sep, nil
}
