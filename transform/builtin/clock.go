package builtin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arloliu/tsfuse/transform"
)

// DefaultClockPattern matches logger timestamps such as 13:05:42:7, where the
// last field is tenths of a second.
const DefaultClockPattern = `(?P<hour>\d\d):(?P<min>\d\d):(?P<sec>[0-9]+):(?P<fracsec>[0-9])`

// ClockToSeconds converts clock-time cells to seconds since midnight.
//
// Cells matching the pattern become seconds with one decimal. Cells that are
// already decimal numbers are rounded to the nearest tenth of a second. Any
// other text, typically the header, is kept unchanged, as is a match whose
// fields are not decimal integers or are too large to add up.
//
// Results are computed in integer tenths so that "13:05:42:7" and "47142.7"
// produce the same key text and therefore align in a merge.
type ClockToSeconds struct {
	re                    *regexp.Regexp
	hour, min, sec, tenth int
}

var _ transform.Rewriter = (*ClockToSeconds)(nil)

// NewClockToSeconds compiles pattern, which must define the named groups
// hour, min and sec; the group fracsec (tenths) is optional.
func NewClockToSeconds(pattern string) (*ClockToSeconds, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("clock pattern: %w", err)
	}

	c := &ClockToSeconds{
		re:    re,
		hour:  re.SubexpIndex("hour"),
		min:   re.SubexpIndex("min"),
		sec:   re.SubexpIndex("sec"),
		tenth: re.SubexpIndex("fracsec"),
	}
	if c.hour < 0 || c.min < 0 || c.sec < 0 {
		return nil, fmt.Errorf("clock pattern %q must define the groups hour, min and sec", pattern)
	}

	return c, nil
}

// DefaultClockToSeconds returns a ClockToSeconds using DefaultClockPattern.
func DefaultClockToSeconds() *ClockToSeconds {
	c, err := NewClockToSeconds(DefaultClockPattern)
	if err != nil {
		panic(err)
	}

	return c
}

// Rewrite implements transform.Rewriter.
func (c *ClockToSeconds) Rewrite(cell, _ string) transform.Result {
	m := c.re.FindStringSubmatch(cell)
	if m == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return transform.Keep(cell)
		}

		return transform.Keep(strconv.FormatFloat(v, 'f', 1, 64))
	}

	tenths, ok := c.tenths(m)
	if !ok {
		return transform.Keep(cell)
	}

	return transform.Keep(strconv.FormatFloat(float64(tenths)/10, 'f', 1, 64))
}

// maxClockField bounds each field so the total in tenths cannot overflow.
const maxClockField = 1 << 40

// tenths returns the time of the matched fields in tenths of a second. It
// reports false when a field is not a decimal integer or is out of range.
func (c *ClockToSeconds) tenths(m []string) (int64, bool) {
	field := func(i int) (int64, bool) {
		v, err := strconv.ParseInt(m[i], 10, 64)
		if err != nil || v < 0 || v > maxClockField {
			return 0, false
		}

		return v, true
	}

	h, ok := field(c.hour)
	if !ok {
		return 0, false
	}
	mi, ok := field(c.min)
	if !ok {
		return 0, false
	}
	s, ok := field(c.sec)
	if !ok {
		return 0, false
	}

	total := ((h*60+mi)*60 + s) * 10
	if c.tenth >= 0 && m[c.tenth] != "" {
		f, ok := field(c.tenth)
		if !ok {
			return 0, false
		}
		total += f
	}

	return total, true
}
