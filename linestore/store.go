package linestore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/arloliu/tsfuse/compress"
	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/format"
	"github.com/arloliu/tsfuse/internal/options"
	"github.com/arloliu/tsfuse/internal/pool"
)

const wildcard = "*"

// Store reads and writes line files below a root directory.
//
// A Store holds no open files and is safe for concurrent use.
type Store struct {
	dir      string
	filePerm os.FileMode
	newline  string
	noSync   bool
}

// New creates a Store rooted at dir. Relative names passed to the Store are
// resolved against dir; absolute names are used as is. An empty dir means the
// current directory.
func New(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:      dir,
		filePerm: defaultFilePerm,
		newline:  Newline,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path joins name with the store directory.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) || s.dir == "" {
		return filepath.Clean(name)
	}

	return filepath.Join(s.dir, name)
}

// Resolve returns the path of the file name refers to.
//
// A name containing '*' in its last element matches any sequence of
// characters there and must match exactly one regular file: no match gives
// errs.ErrMissingInput and several matches give errs.ErrAmbiguousInput. A
// name without a wildcard must exist.
func (s *Store) Resolve(name string) (string, error) {
	path := s.Path(name)
	dir, base := filepath.Split(path)

	if strings.Contains(dir, wildcard) {
		return "", fmt.Errorf("%w: wildcard outside the file name in %q", errs.ErrInvalidPattern, name)
	}

	switch strings.Count(base, wildcard) {
	case 0:
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %w", errs.ErrMissingInput, err)
			}

			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %q is a directory", errs.ErrMissingInput, path)
		}

		return path, nil
	case 1:
		return resolveWildcard(dir, base, name)
	default:
		return "", fmt.Errorf("%w: more than one wildcard in %q", errs.ErrInvalidPattern, name)
	}
}

func resolveWildcard(dir, base, name string) (string, error) {
	prefix, suffix, _ := strings.Cut(base, wildcard)

	lookIn := dir
	if lookIn == "" {
		lookIn = "."
	}
	entries, err := os.ReadDir(lookIn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", errs.ErrMissingInput, err)
		}

		return "", err
	}

	var matches []string
	for _, e := range entries {
		n := e.Name()
		if !e.Type().IsRegular() || len(n) < len(prefix)+len(suffix) {
			continue
		}
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, suffix) {
			matches = append(matches, n)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no file matches %q", errs.ErrMissingInput, name)
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", fmt.Errorf("%w: %q matches %s", errs.ErrAmbiguousInput, name, strings.Join(matches, ", "))
	}
}

// ReadLines reads every line of the file name refers to, without line
// terminators.
func (s *Store) ReadLines(name string) ([]string, error) {
	return s.read(name, -1)
}

// ReadFirstLines reads at most n lines. Plain files are only read as far as
// needed; compressed files are decompressed in full.
func (s *Store) ReadFirstLines(name string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRowCount, n)
	}

	return s.read(name, n)
}

func (s *Store) read(name string, limit int) ([]string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", errs.ErrMissingInput, err)
		}

		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if c := format.FromPath(path); c != format.CompressionNone {
		codec, err := compress.GetCodec(c)
		if err != nil {
			return nil, err
		}

		bb := pool.GetFileBuffer()
		defer pool.PutFileBuffer(bb)

		if _, err := io.Copy(bb, f); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		data, err := codec.Decompress(bb.Bytes())
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		src = bytes.NewReader(data)
	}

	lines, err := scanLines(stripBOM(src), limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return lines, nil
}

// stripBOM removes a leading UTF-8 byte order mark. A UTF-16 byte order mark
// switches decoding to UTF-16; input without one passes through untouched.
func stripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// scanLines splits r into lines. A negative limit reads to the end. A final
// line without terminator is kept; a trailing terminator does not produce an
// empty last line.
func scanLines(r io.Reader, limit int) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	for limit < 0 || len(lines) < limit {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}
	}

	if lines == nil {
		lines = []string{}
	}

	return lines, nil
}

// WriteLines replaces the file at name with lines, each followed by the
// store's newline. The file is compressed when name ends in a compression
// extension. Missing parent directories are created.
func (s *Store) WriteLines(name string, lines []string) error {
	if strings.Contains(name, wildcard) {
		return fmt.Errorf("%w: cannot write to wildcard name %q", errs.ErrInvalidPattern, name)
	}
	path := s.Path(name)

	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	for _, ln := range lines {
		_, _ = bb.WriteString(ln)
		_, _ = bb.WriteString(s.newline)
	}

	payload := bb.Bytes()
	if c := format.FromPath(path); c != format.CompressionNone {
		codec, err := compress.GetCodec(c)
		if err != nil {
			return err
		}
		if payload, err = codec.Compress(payload); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
	}

	return s.writeAtomic(path, payload)
}

func (s *Store) writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("write %s: %w", dest, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if !s.noSync {
		if err := tmp.Sync(); err != nil {
			return fail(err)
		}
	}
	if err := tmp.Chmod(s.filePerm); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", dest, err)
	}

	if !s.noSync {
		_ = syncDir(dir)
	}

	return nil
}

// NameOf returns the logical source name of path: its base name without a
// compression extension and without the remaining extension.
//
//	NameOf("/data/acc.csv") == "acc"
//	NameOf("gyr.csv.zst") == "gyr"
//	NameOf("mag") == "mag"
func NameOf(path string) string {
	base := filepath.Base(format.TrimExtension(path))

	return strings.TrimSuffix(base, filepath.Ext(base))
}
