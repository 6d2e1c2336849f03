package table

import (
	"fmt"
	"strings"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/pool"
)

// Split splits a line into cells. A separator that does not occur in line
// yields a single cell; an empty line yields a single empty cell.
func Split(line, sep string) Row {
	return strings.Split(line, sep)
}

// Join joins cells into a line.
func Join(cells Row, sep string) string {
	switch len(cells) {
	case 0:
		return ""
	case 1:
		return cells[0]
	}

	bb := pool.GetLineBuffer()
	defer pool.PutLineBuffer(bb)

	_, _ = bb.WriteString(cells[0])
	for _, c := range cells[1:] {
		_, _ = bb.WriteString(sep)
		_, _ = bb.WriteString(c)
	}

	return bb.String()
}

// ValidateSeparator rejects separators the codec cannot split on.
func ValidateSeparator(sep string) error {
	if sep == "" {
		return fmt.Errorf("%w: separator must not be empty", errs.ErrInvalidSeparator)
	}
	if strings.ContainsAny(sep, "\r\n") {
		return fmt.Errorf("%w: separator %q contains a line break", errs.ErrInvalidSeparator, sep)
	}

	return nil
}
