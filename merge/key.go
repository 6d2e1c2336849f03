package merge

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// keyStatus is the outcome of parsing the key prefix of a row.
type keyStatus uint8

const (
	keyOK keyStatus = iota
	keyNoSeparator
	keyNotNumeric
	keyNaN
)

// rowKey extracts the key of a data row. A row needs a key cell and at least
// one more cell; anything shorter had no separator.
func rowKey(row []string) (float64, keyStatus) {
	if len(row) < 2 {
		return 0, keyNoSeparator
	}

	return parseKey(row[0])
}

// parseKey parses the key cell of a data row. Only strconv syntax errors and
// NaN values reject the row; out-of-range values keep the saturated result
// (±Inf or ±0) that strconv returns alongside ErrRange.
func parseKey(cell string) (float64, keyStatus) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, keyNotNumeric
	}
	if math.IsNaN(v) {
		return 0, keyNaN
	}

	return v, keyOK
}

// compareKeys orders keys ascending, with -0 before +0 so that the two zero
// groups have a stable relative order.
func compareKeys(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	sa, sb := math.Signbit(a), math.Signbit(b)
	switch {
	case sa && !sb:
		return -1
	case !sa && sb:
		return 1
	default:
		return 0
	}
}
