package builtin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arloliu/tsfuse/transform"
)

// Header labels written by Elapsed for the two columns it produces.
const (
	ClockHeader   = "Clock Time (s)"
	ElapsedHeader = "Elapsed Time (s)"
)

var numericCell = regexp.MustCompile(`^[-.0-9]+$`)

// Elapsed turns a clock column into two columns: the clock value itself and
// the time elapsed since the first numeric row.
//
// The first numeric value seen after Reset becomes the start time. Column
// resets the rewriter before every table, so each run starts from zero.
//
// A non-empty cell that is not a number is taken for the header and becomes
// the ClockHeader and ElapsedHeader labels, so the column should hold numbers
// in every data row. An empty cell becomes two empty cells.
type Elapsed struct {
	start   float64
	started bool
}

var (
	_ transform.Rewriter = (*Elapsed)(nil)
	_ transform.Resetter = (*Elapsed)(nil)
)

// NewElapsed creates an Elapsed rewriter.
func NewElapsed() *Elapsed {
	return &Elapsed{}
}

// Reset forgets the start time.
func (e *Elapsed) Reset() {
	e.start = 0
	e.started = false
}

// Start returns the captured start time and whether one was captured.
func (e *Elapsed) Start() (float64, bool) {
	return e.start, e.started
}

// Rewrite implements transform.Rewriter.
func (e *Elapsed) Rewrite(cell, sep string) transform.Result {
	if strings.TrimSpace(cell) == "" {
		return transform.Keep(cell + sep)
	}
	if !numericCell.MatchString(cell) {
		return transform.Keep(ClockHeader + sep + ElapsedHeader)
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		// "-", "." and similar match the character class but are not numbers
		return transform.Keep(cell + sep)
	}
	if !e.started {
		e.start = v
		e.started = true
	}

	return transform.Keep(cell + sep + strconv.FormatFloat(v-e.start, 'f', -1, 64))
}
