package linestore

import (
	"fmt"
	"os"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/options"
)

const (
	defaultFilePerm os.FileMode = 0o644
	defaultDirPerm  os.FileMode = 0o755
)

// Option configures a Store.
type Option = options.Option[*Store]

// WithFilePerm sets the permission bits of written files.
func WithFilePerm(perm os.FileMode) Option {
	return options.New(func(s *Store) error {
		if perm&^os.ModePerm != 0 || perm == 0 {
			return fmt.Errorf("%w: file permission %v", errs.ErrInvalidConfiguration, perm)
		}
		s.filePerm = perm

		return nil
	})
}

// WithNewline overrides the platform line terminator appended to every
// written line.
func WithNewline(nl string) Option {
	return options.New(func(s *Store) error {
		if nl != "\n" && nl != "\r\n" {
			return fmt.Errorf("%w: newline %q", errs.ErrInvalidConfiguration, nl)
		}
		s.newline = nl

		return nil
	})
}

// WithoutSync skips the fsync of written files and their directory.
func WithoutSync() Option {
	return options.NoError(func(s *Store) {
		s.noSync = true
	})
}
