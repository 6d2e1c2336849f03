package transform

import (
	"fmt"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/options"
)

// ShapePolicy decides what happens to a row that is too short for the column
// being rewritten.
type ShapePolicy uint8

const (
	// ShapePassThrough copies short rows unchanged and counts them in
	// Stats.PassedThrough.
	ShapePassThrough ShapePolicy = iota + 1
	// ShapeStrict fails the whole call with errs.ErrShapeMismatch.
	ShapeStrict
)

func (p ShapePolicy) String() string {
	switch p {
	case ShapePassThrough:
		return "pass"
	case ShapeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseShapePolicy parses "pass" or "strict".
func ParseShapePolicy(s string) (ShapePolicy, error) {
	switch s {
	case "", "pass", "passthrough":
		return ShapePassThrough, nil
	case "strict", "fail":
		return ShapeStrict, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidShapePolicy, s)
	}
}

// Config holds the settings of a transform call.
type Config struct {
	shape      ShapePolicy
	skipHeader bool
}

// Option configures a transform call.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{shape: ShapePassThrough}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithShapePolicy sets the policy for rows too short for the target column.
func WithShapePolicy(p ShapePolicy) Option {
	return options.New(func(c *Config) error {
		switch p {
		case ShapePassThrough, ShapeStrict:
			c.shape = p
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidShapePolicy, p)
		}
	})
}

// WithHeaderPassThrough copies the header row unchanged instead of handing
// its cell to the rewriter.
func WithHeaderPassThrough() Option {
	return options.NoError(func(c *Config) {
		c.skipHeader = true
	})
}
