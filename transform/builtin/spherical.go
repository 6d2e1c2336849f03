package builtin

import (
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/tsfuse/transform"
)

// Spherical converts three adjacent Cartesian columns x, y, z starting at
// column into r, theta and phi:
//
//	r     = sqrt(x² + y² + z²)
//	theta = atan2(y, x), normalized to [0, 2π)
//	phi   = atan2(sqrt(x² + y²), z)
//
// Row 0 is the header: each of the three names loses its last character (the
// axis letter) and gains r, theta or phi, so "magx,magy,magz" becomes
// "magr,magtheta,magphi".
//
// A data row whose three cells are all empty, a sensor gap in a merged table,
// is kept unchanged. Any other data row with a cell that is not a number is
// reported as not mappable and handled by the ShapePolicy.
type Spherical struct {
	column int
}

var _ transform.RowMapper = Spherical{}

// NewSpherical creates a Spherical mapper for the x column at index column.
func NewSpherical(column int) Spherical {
	return Spherical{column: column}
}

// MapRow implements transform.RowMapper. Rows with fewer than column+3 cells
// are reported as too short.
func (s Spherical) MapRow(row []string, index int, _ string) ([]string, bool) {
	c := s.column
	if c < 0 || len(row) < c+3 {
		return nil, false
	}

	xyz := row[c : c+3]
	if index > 0 && allBlank(xyz) {
		return row, true
	}

	out := make([]string, 0, len(row))
	out = append(out, row[:c]...)

	if index == 0 {
		out = append(out,
			trimLast(xyz[0])+"r",
			trimLast(xyz[1])+"theta",
			trimLast(xyz[2])+"phi",
		)
	} else {
		x, errX := strconv.ParseFloat(strings.TrimSpace(xyz[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(xyz[1]), 64)
		z, errZ := strconv.ParseFloat(strings.TrimSpace(xyz[2]), 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, false
		}

		r, theta, phi := ToSpherical(x, y, z)
		out = append(out, formatFloat(r), formatFloat(theta), formatFloat(phi))
	}

	return append(out, row[c+3:]...), true
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// ToSpherical converts Cartesian coordinates to (r, theta, phi) with theta in
// [0, 2π) and phi in [0, π].
func ToSpherical(x, y, z float64) (r, theta, phi float64) {
	r = math.Sqrt(x*x + y*y + z*z)
	theta = math.Atan2(y, x)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	phi = math.Atan2(math.Sqrt(x*x+y*y), z)

	return r, theta, phi
}

func trimLast(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)

	return string(runes[:len(runes)-1])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
