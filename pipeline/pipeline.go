// Package pipeline runs the sensor fusion job: it loads accelerometer,
// gyroscope and magnetometer logs, converts their clock column to seconds,
// merges them on that key and writes a machine-readable and a human-readable
// table.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tsfuse/config"
	"github.com/arloliu/tsfuse/export"
	"github.com/arloliu/tsfuse/internal/logging"
	"github.com/arloliu/tsfuse/internal/metrics"
	"github.com/arloliu/tsfuse/linestore"
	"github.com/arloliu/tsfuse/merge"
	"github.com/arloliu/tsfuse/table"
	"github.com/arloliu/tsfuse/transform"
	"github.com/arloliu/tsfuse/transform/builtin"
)

// Source identifies one input log.
type Source struct {
	// File is the file name, relative to the input directory. It may contain
	// a single '*' wildcard.
	File string
	// Prefix is prepended to the source's column names in the merged header.
	Prefix string
	// DropColumn, if not empty, names a column removed after clock conversion.
	DropColumn string
}

// Result describes a successful run.
type Result struct {
	RunID string
	// Merged is the key-indexed merge before trimming.
	Merged *table.Table
	// Machine is the trimmed merge written to the machine output.
	Machine *table.Table
	// Human adds spherical magnetometer columns and elapsed time to Machine.
	Human *table.Table
	// Head holds the first rows of Human, or nil when head output is disabled.
	Head *table.Table
	// Report is the merge report.
	Report merge.Report
	// Written lists the files written, in order.
	Written []string
}

// Sources returns the magnetometer, gyroscope and accelerometer sources of
// cfg, in merge order.
func Sources(cfg *config.Config) []Source {
	s := cfg.Sensors

	return []Source{
		{File: s.MagFile, Prefix: s.MagPrefix, DropColumn: s.MagDropColumn},
		{File: s.GyrFile, Prefix: s.GyrPrefix},
		{File: s.AccFile, Prefix: s.AccPrefix},
	}
}

// Run executes the pipeline described by cfg, which must be valid.
//
// The CSV outputs are computed in memory before the first file is written,
// so a missing or ambiguous input, or any failing merge or transform step,
// leaves the output directory untouched. The xlsx and SQLite exports run
// after the CSV outputs are written; an export failure is returned with the
// CSV files already in place and listed in Result.Written.
//
// A nil logger discards logs and nil metrics are replaced by a private set.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if m == nil {
		m = metrics.New()
	}

	res, err := run(ctx, cfg, logger, m)
	m.ObserveRun("sensors", err)

	return res, err
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, res.RunID)

	in, err := linestore.New(cfg.Sensors.Dir)
	if err != nil {
		return res, err
	}
	out, err := linestore.New(cfg.Sensors.OutputDirOrDefault())
	if err != nil {
		return res, err
	}

	clockCol, err := table.ColumnIndex(cfg.Sensors.ClockColumn)
	if err != nil {
		return res, err
	}
	clock, err := builtin.NewClockToSeconds(cfg.Sensors.ClockPattern)
	if err != nil {
		return res, err
	}
	shape := transform.WithShapePolicy(cfg.Shape())

	logger.InfoContext(ctx, "sensor run started",
		"input_dir", in.Dir(), "output_dir", out.Dir(), "capture_limit", cfg.CaptureLimit)

	sources := Sources(cfg)
	tables := make([]*table.Table, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			t, err := load(gctx, in, src, cfg.Separator, clockCol, clock, shape, logger, m)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.File, err)
			}
			tables[i] = t

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "loading sources failed", "error", err)
		return res, err
	}

	merged, report, err := merge.ByIndex(tables, cfg.CaptureLimit)
	if err != nil {
		return res, fmt.Errorf("merge: %w", err)
	}
	res.Merged, res.Report = merged, report

	m.ObserveSkipped(report.Skipped.NoSeparator, report.Skipped.NotNumeric, report.Skipped.NaN)
	m.RowsDiscarded.Add(float64(report.Discarded))
	m.RowsPadded.Add(float64(report.Padded))
	m.Groups.Add(float64(report.Groups))

	logger.InfoContext(ctx, "sources merged",
		"rows", report.Rows,
		"groups", report.Groups,
		"skipped", report.Skipped.Total(),
		"discarded", report.Discarded,
		"padded", report.Padded,
		"emitted", report.Emitted)
	if len(report.DuplicateColumns) > 0 {
		logger.WarnContext(ctx, "merged header has repeated column names", "columns", report.DuplicateColumns)
	}

	if res.Machine, err = table.TrimPartial(merged); err != nil {
		return res, fmt.Errorf("trim: %w", err)
	}
	if res.Human, err = humanReadable(res.Machine, cfg, clockCol, shape); err != nil {
		return res, err
	}
	if cfg.Sensors.HeadRows > 0 {
		if res.Head, err = table.Head(res.Human, cfg.Sensors.HeadRows); err != nil {
			return res, err
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	outputs := []output{
		{cfg.Sensors.MachineOutput, res.Machine},
		{cfg.Sensors.HumanOutput, res.Human},
	}
	if res.Head != nil {
		outputs = append(outputs, output{cfg.Sensors.HeadOutputName(), res.Head})
	}

	for _, o := range outputs {
		if err := out.WriteLines(o.name, o.tbl.Lines()); err != nil {
			return res, err
		}
		res.Written = append(res.Written, out.Path(o.name))
		m.RowsWritten.WithLabelValues(o.name).Add(float64(o.tbl.Len()))
		logger.InfoContext(ctx, "output written", "file", out.Path(o.name), "rows", o.tbl.Len())
	}

	if err := exports(ctx, cfg, out, res.Human, &res, logger); err != nil {
		logger.ErrorContext(ctx, "export failed", "error", err, "written", res.Written)
		return res, err
	}

	logger.InfoContext(ctx, "sensor run finished", "outputs", len(res.Written))

	return res, nil
}

type output struct {
	name string
	tbl  *table.Table
}

// load reads one source, converts its clock column and drops its configured
// column.
func load(
	ctx context.Context,
	store *linestore.Store,
	src Source,
	sep string,
	clockCol int,
	clock *builtin.ClockToSeconds,
	shape transform.Option,
	logger *slog.Logger,
	m *metrics.Metrics,
) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := store.Resolve(src.File)
	if err != nil {
		return nil, err
	}
	lines, err := store.ReadLines(src.File)
	if err != nil {
		return nil, err
	}

	name := src.Prefix
	if name == "" {
		name = linestore.NameOf(path)
	}
	m.RowsRead.WithLabelValues(name).Add(float64(len(lines)))

	t, err := table.Parse(name, lines, sep)
	if err != nil {
		return nil, err
	}
	if err := table.RequireHeader(t); err != nil {
		return nil, err
	}

	t, stats, err := transform.Column(t, clockCol, clock, shape)
	if err != nil {
		return nil, fmt.Errorf("clock column: %w", err)
	}

	if src.DropColumn != "" {
		col, err := table.ColumnIndex(src.DropColumn)
		if err != nil {
			return nil, err
		}
		if t, _, err = transform.Column(t, col, builtin.Drop(), shape); err != nil {
			return nil, fmt.Errorf("drop column %s: %w", src.DropColumn, err)
		}
	}

	logger.DebugContext(ctx, "source loaded",
		"source", name,
		"path", path,
		"rows", t.Len(),
		"short_rows", stats.PassedThrough)

	return t, nil
}

// humanReadable converts the magnetometer columns to spherical coordinates and
// splits the clock column into clock time and elapsed time.
func humanReadable(t *table.Table, cfg *config.Config, clockCol int, shape transform.Option) (*table.Table, error) {
	human := t
	if cfg.Sensors.SphericalColumn != "" {
		col, err := table.ColumnIndex(cfg.Sensors.SphericalColumn)
		if err != nil {
			return nil, err
		}
		if human, _, err = transform.MapRows(human, builtin.NewSpherical(col), shape); err != nil {
			return nil, fmt.Errorf("spherical: %w", err)
		}
	}

	human, _, err := transform.Column(human, clockCol, builtin.NewElapsed(), shape)
	if err != nil {
		return nil, fmt.Errorf("elapsed time: %w", err)
	}

	return human, nil
}

func exports(ctx context.Context, cfg *config.Config, out *linestore.Store, t *table.Table, res *Result, logger *slog.Logger) error {
	s := cfg.Sensors

	if s.XLSXPath != "" {
		path := out.Path(s.XLSXPath)
		if err := export.WriteXLSX(t, path, s.XLSXSheet); err != nil {
			return err
		}
		res.Written = append(res.Written, path)
		logger.InfoContext(ctx, "workbook written", "file", path, "sheet", s.XLSXSheet)
	}

	if s.SQLiteDSN != "" {
		n, err := export.WriteSQLite(ctx, t, s.SQLiteDSN, s.SQLiteTable)
		if err != nil {
			return err
		}
		res.Written = append(res.Written, s.SQLiteDSN)
		logger.InfoContext(ctx, "sqlite table written", "table", s.SQLiteTable, "rows", n)
	}

	return nil
}
