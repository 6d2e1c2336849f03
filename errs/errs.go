// Package errs defines the sentinel errors returned by tsfuse packages.
//
// Callers should match them with errors.Is; returned errors usually wrap a
// sentinel together with the file, row or column that triggered it.
package errs

import "errors"

// File-level errors. These abort the whole operation.
var (
	// ErrMissingInput is returned when a source file, or the single match of a
	// wildcard name, does not exist.
	ErrMissingInput = errors.New("missing input")
	// ErrAmbiguousInput is returned when a wildcard name matches more than one file.
	ErrAmbiguousInput = errors.New("ambiguous input")
	// ErrMissingHeader is returned when a table has no header row.
	ErrMissingHeader = errors.New("table has no header row")
)

// Argument errors.
var (
	ErrNoSources            = errors.New("no source tables")
	ErrInvalidSeparator     = errors.New("invalid separator")
	ErrSeparatorMismatch    = errors.New("source tables use different separators")
	ErrInvalidCaptureLimit  = errors.New("invalid capture limit")
	ErrInvalidColumn        = errors.New("invalid column")
	ErrInvalidRowCount      = errors.New("invalid row count")
	ErrInvalidPattern       = errors.New("invalid file name pattern")
	ErrNilRewriter          = errors.New("nil rewriter")
	ErrUnsupportedRewriter  = errors.New("unsupported rewriter")
	ErrInvalidShapePolicy   = errors.New("invalid shape policy")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Row-level errors.
var (
	// ErrShapeMismatch is returned under the strict shape policy when a row is
	// too short for the column being rewritten.
	ErrShapeMismatch = errors.New("row shape mismatch")
)
