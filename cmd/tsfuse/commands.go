package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/tsfuse"
	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/pipeline"
	"github.com/arloliu/tsfuse/transform"
	"github.com/arloliu/tsfuse/transform/builtin"
)

// Rewriter names accepted by the column command.
const (
	rewriteSeconds  = "seconds"
	rewriteDrop     = "drop"
	rewriteElapsed  = "elapsed"
	rewriteDateTime = "datetime"
)

func (a *app) newSensorsCmd() *cobra.Command {
	var dir, outDir string

	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "Run the accelerometer, gyroscope and magnetometer pipeline",
		Long: `Reads the acc, gyr and mag logs, converts their clock column to seconds,
drops the configured magnetometer column, merges the three on the clock key and
writes the machine-readable, human-readable and first-rows outputs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("dir") {
				a.cfg.Sensors.Dir = dir
			}
			if cmd.Flags().Changed("out-dir") {
				a.cfg.Sensors.OutputDir = outDir
			}

			res, err := pipeline.Run(cmd.Context(), a.cfg, a.logger, a.metrics)
			if err != nil {
				return err
			}
			for _, w := range res.Written {
				fmt.Fprintln(a.stdout, w)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the sensor logs")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the outputs (default --dir)")

	return cmd
}

func (a *app) newMergeCmd() *cobra.Command {
	var (
		ff    fileFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "merge -o OUTPUT INPUT...",
		Short: "Merge files by the numeric key in their first column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, sep, err := a.store(&ff)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.CaptureLimit
			}

			report, err := tsfuse.MergeByIndex(store, args, ff.out, sep, limit)
			a.metrics.ObserveRun("merge", err)
			if err != nil {
				return err
			}

			a.metrics.ObserveSkipped(report.Skipped.NoSeparator, report.Skipped.NotNumeric, report.Skipped.NaN)
			a.metrics.RowsDiscarded.Add(float64(report.Discarded))
			a.metrics.RowsPadded.Add(float64(report.Padded))
			a.metrics.Groups.Add(float64(report.Groups))
			a.metrics.RowsWritten.WithLabelValues(ff.out).Add(float64(report.Emitted + 1))

			a.logger.InfoContext(cmd.Context(), "merged",
				"output", ff.out,
				"groups", report.Groups,
				"rows", report.Emitted,
				"skipped", report.Skipped.Total(),
				"discarded", report.Discarded)
			if len(report.DuplicateColumns) > 0 {
				a.logger.WarnContext(cmd.Context(), "merged header has repeated column names",
					"columns", report.DuplicateColumns)
			}

			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "rows kept per source and key, 0 for no limit (default from configuration)")

	return cmd
}

func (a *app) newConcatCmd() *cobra.Command {
	var ff fileFlags

	cmd := &cobra.Command{
		Use:   "concat -o OUTPUT INPUT...",
		Short: "Place files side by side by row position",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, sep, err := a.store(&ff)
			if err != nil {
				return err
			}

			err = tsfuse.Merge(store, args, ff.out, sep)
			a.metrics.ObserveRun("concat", err)

			return err
		},
	}
	ff.register(cmd)

	return cmd
}

func (a *app) newColumnCmd() *cobra.Command {
	var (
		ff          fileFlags
		column      string
		rewrite     string
		passHeader  bool
		strictShape bool
	)

	cmd := &cobra.Command{
		Use:   "column -o OUTPUT --column A --rewrite seconds|drop|elapsed|datetime INPUT",
		Short: "Rewrite or delete one column of every row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := a.rewriter(rewrite)
			if err != nil {
				return err
			}
			store, sep, err := a.store(&ff)
			if err != nil {
				return err
			}

			opts := a.shapeOptions(strictShape)
			if passHeader {
				opts = append(opts, transform.WithHeaderPassThrough())
			}

			stats, err := tsfuse.ModifyColumn(store, args[0], ff.out, column, rw, sep, opts...)
			a.metrics.ObserveRun("column", err)
			if err != nil {
				return err
			}

			a.metrics.RowsWritten.WithLabelValues(ff.out).Add(float64(stats.Rows))
			a.logger.InfoContext(cmd.Context(), "column rewritten",
				"output", ff.out,
				"column", column,
				"rewrite", rewrite,
				"rewritten", stats.Rewritten,
				"dropped", stats.Dropped,
				"short_rows", stats.PassedThrough)

			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&column, "column", "A", "column name (A, B, ... AA)")
	cmd.Flags().StringVar(&rewrite, "rewrite", "", "rewrite: seconds, drop, elapsed or datetime")
	cmd.Flags().BoolVar(&passHeader, "header-pass-through", false, "copy the header row unchanged")
	cmd.Flags().BoolVar(&strictShape, "strict", false, "fail on rows too short for the column")
	_ = cmd.MarkFlagRequired("rewrite")

	return cmd
}

func (a *app) newSphericalCmd() *cobra.Command {
	var (
		ff          fileFlags
		column      string
		strictShape bool
	)

	cmd := &cobra.Command{
		Use:   "spherical -o OUTPUT --column B INPUT",
		Short: "Convert three x, y, z columns to r, theta, phi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, sep, err := a.store(&ff)
			if err != nil {
				return err
			}

			_, err = tsfuse.ToSpherical(store, args[0], ff.out, column, sep, a.shapeOptions(strictShape)...)
			a.metrics.ObserveRun("spherical", err)

			return err
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&column, "column", "B", "name of the x column")
	cmd.Flags().BoolVar(&strictShape, "strict", false, "fail on rows too short for the columns")

	return cmd
}

func (a *app) newTrimCmd() *cobra.Command {
	var ff fileFlags

	cmd := &cobra.Command{
		Use:   "trim -o OUTPUT INPUT",
		Short: "Drop partially filled rows at the start and end of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, sep, err := a.store(&ff)
			if err != nil {
				return err
			}

			err = tsfuse.TrimPartial(store, args[0], ff.out, sep)
			a.metrics.ObserveRun("trim", err)

			return err
		},
	}
	ff.register(cmd)

	return cmd
}

func (a *app) newHeadCmd() *cobra.Command {
	var (
		ff   fileFlags
		rows int
	)

	cmd := &cobra.Command{
		Use:   "head -o OUTPUT [-n ROWS] INPUT",
		Short: "Copy the first rows of a file, header included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.store(&ff)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rows") {
				rows = a.cfg.Sensors.HeadRows
			}

			err = tsfuse.PullFirst(store, args[0], ff.out, rows)
			a.metrics.ObserveRun("head", err)

			return err
		},
	}
	ff.register(cmd)
	cmd.Flags().IntVarP(&rows, "rows", "n", 0, "number of lines to copy (default from configuration)")

	return cmd
}

func (a *app) rewriter(name string) (transform.Rewriter, error) {
	switch strings.ToLower(name) {
	case rewriteSeconds:
		c, err := builtin.NewClockToSeconds(a.cfg.Sensors.ClockPattern)
		if err != nil {
			return nil, err
		}

		return c, nil
	case rewriteDrop:
		return builtin.Drop(), nil
	case rewriteElapsed:
		return builtin.NewElapsed(), nil
	case rewriteDateTime:
		return builtin.DateTimeSplit(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s, %s, %s or %s)", errs.ErrUnsupportedRewriter,
			name, rewriteSeconds, rewriteDrop, rewriteElapsed, rewriteDateTime)
	}
}

func (a *app) shapeOptions(strict bool) []transform.Option {
	policy := a.cfg.Shape()
	if strict {
		policy = transform.ShapeStrict
	}

	return []transform.Option{transform.WithShapePolicy(policy)}
}
