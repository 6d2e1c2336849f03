package merge

import (
	"fmt"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/options"
)

// Config holds the settings of a ByIndex call.
type Config struct {
	keyHeader string
	noPrefix  bool
}

// Option configures a ByIndex call.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithKeyHeader overrides the key column header, which defaults to the key
// header of the first source.
func WithKeyHeader(name string) Option {
	return options.New(func(c *Config) error {
		if name == "" {
			return fmt.Errorf("%w: empty key header", errs.ErrInvalidConfiguration)
		}
		c.keyHeader = name

		return nil
	})
}

// WithoutSourcePrefix keeps the original header names of every source
// instead of prefixing them with the source name. Name clashes are still
// listed in Report.DuplicateColumns.
func WithoutSourcePrefix() Option {
	return options.NoError(func(c *Config) {
		c.noPrefix = true
	})
}
