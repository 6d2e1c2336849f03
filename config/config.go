// Package config loads tsfuse settings from an optional YAML file overlaid
// by TSFUSE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/table"
	"github.com/arloliu/tsfuse/transform"
	"github.com/arloliu/tsfuse/transform/builtin"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "TSFUSE"

// Config is the complete tool configuration.
type Config struct {
	Separator    string `yaml:"separator" envconfig:"SEPARATOR" validate:"required"`
	CaptureLimit int    `yaml:"capture_limit" envconfig:"CAPTURE_LIMIT" validate:"gte=0"`
	ShapePolicy  string `yaml:"shape_policy" envconfig:"SHAPE_POLICY" validate:"oneof=pass strict"`

	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Sensors SensorsConfig `yaml:"sensors" envconfig:"SENSORS"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// SensorsConfig configures the accelerometer/gyroscope/magnetometer pipeline.
type SensorsConfig struct {
	// Dir holds the source files; outputs go to OutputDir, or Dir if empty.
	Dir       string `yaml:"dir" envconfig:"DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	AccFile string `yaml:"acc_file" envconfig:"ACC_FILE" validate:"required"`
	GyrFile string `yaml:"gyr_file" envconfig:"GYR_FILE" validate:"required"`
	MagFile string `yaml:"mag_file" envconfig:"MAG_FILE" validate:"required"`

	// Prefixes for the derived column names of each source.
	AccPrefix string `yaml:"acc_prefix" envconfig:"ACC_PREFIX"`
	GyrPrefix string `yaml:"gyr_prefix" envconfig:"GYR_PREFIX"`
	MagPrefix string `yaml:"mag_prefix" envconfig:"MAG_PREFIX"`

	ClockColumn     string `yaml:"clock_column" envconfig:"CLOCK_COLUMN" validate:"required,alpha"`
	ClockPattern    string `yaml:"clock_pattern" envconfig:"CLOCK_PATTERN" validate:"required"`
	MagDropColumn   string `yaml:"mag_drop_column" envconfig:"MAG_DROP_COLUMN" validate:"omitempty,alpha"`
	SphericalColumn string `yaml:"spherical_column" envconfig:"SPHERICAL_COLUMN" validate:"omitempty,alpha"`

	HeadRows      int    `yaml:"head_rows" envconfig:"HEAD_ROWS" validate:"gte=0"`
	MachineOutput string `yaml:"machine_output" envconfig:"MACHINE_OUTPUT" validate:"required"`
	HumanOutput   string `yaml:"human_output" envconfig:"HUMAN_OUTPUT" validate:"required"`
	// HeadOutput defaults to human-readable-first-<HeadRows>.csv.
	HeadOutput string `yaml:"head_output" envconfig:"HEAD_OUTPUT"`

	XLSXPath    string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
	XLSXSheet   string `yaml:"xlsx_sheet" envconfig:"XLSX_SHEET"`
	// SQLiteDSN is passed to the driver unchanged; relative paths are
	// relative to the working directory, not OutputDir.
	SQLiteDSN   string `yaml:"sqlite_dsn" envconfig:"SQLITE_DSN"`
	SQLiteTable string `yaml:"sqlite_table" envconfig:"SQLITE_TABLE" validate:"required_with=SQLiteDSN"`
}

// Default returns the built-in configuration. It reproduces the original
// sensor tool: comma separated files acc.csv, gyr.csv and mag.csv, one row
// per source and key, magnetometer column E dropped and column B converted to
// spherical coordinates.
func Default() *Config {
	return &Config{
		Separator:    ",",
		CaptureLimit: 1,
		ShapePolicy:  transform.ShapePassThrough.String(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sensors: SensorsConfig{
			Dir:             ".",
			AccFile:         "acc.csv",
			GyrFile:         "gyr.csv",
			MagFile:         "mag.csv",
			AccPrefix:       "a",
			GyrPrefix:       "g",
			MagPrefix:       "m",
			ClockColumn:     "A",
			ClockPattern:    builtin.DefaultClockPattern,
			MagDropColumn:   "E",
			SphericalColumn: "B",
			HeadRows:        1000,
			MachineOutput:   "C-readable.csv",
			HumanOutput:     "human-readable.csv",
			XLSXSheet:       "fused",
			SQLiteTable:     "readings",
		},
	}
}

// Load builds the configuration from Default, the YAML file at path (skipped
// when path is empty) and the environment, in that order, and validates it.
// Unknown YAML keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", errs.ErrInvalidConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: config file: %w", errs.ErrMissingInput, err)
		}

		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidConfiguration, path, err)
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the values that need parsing:
// the separator, the shape policy, column names and the clock pattern.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	if err := table.ValidateSeparator(c.Separator); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	if _, err := transform.ParseShapePolicy(c.ShapePolicy); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	for _, col := range []string{c.Sensors.ClockColumn, c.Sensors.MagDropColumn, c.Sensors.SphericalColumn} {
		if col == "" {
			continue
		}
		if _, err := table.ColumnIndex(col); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
		}
	}
	if _, err := builtin.NewClockToSeconds(c.Sensors.ClockPattern); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	return nil
}

// Shape returns the parsed shape policy. It assumes a validated Config.
func (c *Config) Shape() transform.ShapePolicy {
	p, err := transform.ParseShapePolicy(c.ShapePolicy)
	if err != nil {
		return transform.ShapePassThrough
	}

	return p
}

// OutputDirOrDefault returns the directory the sensor pipeline writes to.
func (s SensorsConfig) OutputDirOrDefault() string {
	if s.OutputDir != "" {
		return s.OutputDir
	}

	return s.Dir
}

// HeadOutputName returns the name of the first-rows output file.
func (s SensorsConfig) HeadOutputName() string {
	if s.HeadOutput != "" {
		return s.HeadOutput
	}

	return fmt.Sprintf("human-readable-first-%d.csv", s.HeadRows)
}
