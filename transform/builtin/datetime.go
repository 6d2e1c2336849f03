package builtin

import (
	"regexp"

	"github.com/arloliu/tsfuse/transform"
)

var dateTimePattern = regexp.MustCompile(`(\d\d\d\d-\d\d-\d\d) (\d\d?:\d\d)`)

// DateTimeSplit splits "2015-07-08 13:05" style cells into a date column and
// a time column. Cells without a date and time are dropped, which shifts the
// rest of the row left; use it on tables whose header is handled separately
// (see transform.WithHeaderPassThrough).
func DateTimeSplit() transform.Rewriter {
	return transform.RewriteFunc(func(cell, sep string) transform.Result {
		m := dateTimePattern.FindStringSubmatch(cell)
		if m == nil {
			return transform.Drop()
		}

		return transform.Keep(m[1] + sep + m[2])
	})
}
