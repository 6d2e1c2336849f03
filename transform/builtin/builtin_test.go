package builtin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfuse/table"
	"github.com/arloliu/tsfuse/transform"
)

func parse(t *testing.T, lines ...string) *table.Table {
	t.Helper()
	tbl, err := table.Parse("acc", lines, ",")
	require.NoError(t, err)

	return tbl
}

func kept(t *testing.T, r transform.Result) string {
	t.Helper()
	v, ok := r.Value()
	require.True(t, ok)

	return v
}

func TestClockToSeconds(t *testing.T) {
	c := DefaultClockToSeconds()

	tests := []struct {
		cell string
		want string
	}{
		{"13:05:42:7", "47142.7"},
		{"00:00:01:0", "1.0"},
		{"10:00:00:3", "36000.3"},
		{"47142.66", "47142.7"},
		{"12", "12.0"},
		{"Time", "Time"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			require.Equal(t, tt.want, kept(t, c.Rewrite(tt.cell, ",")))
		})
	}
}

func TestClockToSeconds_AlignsWithDecimals(t *testing.T) {
	c := DefaultClockToSeconds()

	require.Equal(t, kept(t, c.Rewrite("10:00:00:3", ",")), kept(t, c.Rewrite("36000.3", ",")))
}

func TestNewClockToSeconds(t *testing.T) {
	c, err := NewClockToSeconds(`(?P<hour>\d+)h(?P<min>\d+)m(?P<sec>\d+)s`)
	require.NoError(t, err)
	require.Equal(t, "3723.0", kept(t, c.Rewrite("1h2m3s", ",")))

	_, err = NewClockToSeconds(`(\d+)`)
	require.Error(t, err)

	_, err = NewClockToSeconds(`(`)
	require.Error(t, err)
}

func TestDrop(t *testing.T) {
	require.True(t, Drop().Rewrite("anything", ",").Dropped())
}

func TestElapsed(t *testing.T) {
	in := parse(t, "Time,x", "10.0,a", "10.5,b", "12.0,c")
	e := NewElapsed()

	out, _, err := transform.Column(in, 0, e)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Clock Time (s),Elapsed Time (s),x",
		"10.0,0,a",
		"10.5,0.5,b",
		"12.0,2,c",
	}, out.Lines())

	start, ok := e.Start()
	require.True(t, ok)
	require.Equal(t, 10.0, start)
}

func TestElapsed_RepeatedRunsAreIndependent(t *testing.T) {
	e := NewElapsed()

	first, _, err := transform.Column(parse(t, "Time", "5", "6"), 0, e)
	require.NoError(t, err)
	second, _, err := transform.Column(parse(t, "Time", "100", "101"), 0, e)
	require.NoError(t, err)

	require.Equal(t, "5,0", table.Join(first.Rows[1], ","))
	require.Equal(t, "100,0", table.Join(second.Rows[1], ","))
	require.Equal(t, "101,1", table.Join(second.Rows[2], ","))
}

func TestDateTimeSplit(t *testing.T) {
	rw := DateTimeSplit()

	require.Equal(t, "2015-07-08;13:05", kept(t, rw.Rewrite("2015-07-08 13:05:59", ";")))
	require.Equal(t, "2015-07-08,9:30", kept(t, rw.Rewrite("2015-07-08 9:30", ",")))
	require.True(t, rw.Rewrite("Date", ",").Dropped())
}

func TestDateTimeSplit_Table(t *testing.T) {
	in := parse(t, "when,v", "2015-07-08 13:05,1")

	out, _, err := transform.Column(in, 0, DateTimeSplit(), transform.WithHeaderPassThrough())
	require.NoError(t, err)
	require.Equal(t, []string{"when,v", "2015-07-08,13:05,1"}, out.Lines())
}

func TestToSpherical(t *testing.T) {
	r, theta, phi := ToSpherical(0, 0, 1)
	require.InDelta(t, 1.0, r, 1e-12)
	require.InDelta(t, 0.0, theta, 1e-12)
	require.InDelta(t, 0.0, phi, 1e-12)

	r, theta, phi = ToSpherical(0, -2, 0)
	require.InDelta(t, 2.0, r, 1e-12)
	require.InDelta(t, 3*math.Pi/2, theta, 1e-12)
	require.InDelta(t, math.Pi/2, phi, 1e-12)

	_, theta, _ = ToSpherical(-1, -1e-9, 0)
	require.GreaterOrEqual(t, theta, 0.0)
	require.Less(t, theta, 2*math.Pi)
}

func TestSpherical_MapRows(t *testing.T) {
	in := parse(t, "t,mx,my,mz,gx", "1,0,0,2,0.5", "2,0,0")

	out, stats, err := transform.MapRows(in, NewSpherical(1))
	require.NoError(t, err)

	require.Equal(t, table.Row{"t", "mr", "mtheta", "mphi", "gx"}, out.Rows[0])
	require.Equal(t, table.Row{"1", "2", "0", "0", "0.5"}, out.Rows[1])
	require.Equal(t, table.Row{"2", "0", "0"}, out.Rows[2])
	require.Equal(t, 1, stats.PassedThrough)
}

func TestSpherical_NonNumeric(t *testing.T) {
	_, ok := NewSpherical(0).MapRow([]string{"1.0", "x", "2"}, 1, ",")
	require.False(t, ok)

	_, ok = NewSpherical(-1).MapRow([]string{"1", "2", "3"}, 1, ",")
	require.False(t, ok)
}

func TestClockToSeconds_UnparsableFieldsKept(t *testing.T) {
	c := DefaultClockToSeconds()

	overflow := "00:00:99999999999999999999:0"
	require.Equal(t, overflow, kept(t, c.Rewrite(overflow, ",")))

	huge := "00:00:9999999999999:0"
	require.Equal(t, huge, kept(t, c.Rewrite(huge, ",")))

	words, err := NewClockToSeconds(`(?P<hour>\w+):(?P<min>\w+):(?P<sec>\w+)`)
	require.NoError(t, err)
	require.Equal(t, "ab:00:01", kept(t, words.Rewrite("ab:00:01", ",")))
	require.Equal(t, "3661.0", kept(t, words.Rewrite("01:01:01", ",")))
}

func TestElapsed_EmptyCell(t *testing.T) {
	in := parse(t, "Time,x", "10.0,a", ",b", "11.0,c")

	out, _, err := transform.Column(in, 0, NewElapsed())
	require.NoError(t, err)
	require.Equal(t, []string{
		"Clock Time (s),Elapsed Time (s),x",
		"10.0,0,a",
		",,b",
		"11.0,1,c",
	}, out.Lines())
}

func TestSpherical_GapRowKept(t *testing.T) {
	in := parse(t, "t,mx,my,mz,ax", "1,1,0,0,5", "2,,,,6", "3,0,1,0,7")

	out, stats, err := transform.MapRows(in, NewSpherical(1))
	require.NoError(t, err)
	require.Equal(t, 0, stats.PassedThrough)

	require.Equal(t, table.Row{"t", "mr", "mtheta", "mphi", "ax"}, out.Rows[0])
	require.Equal(t, table.Row{"1", "1", "0", formatFloat(math.Pi / 2), "5"}, out.Rows[1])
	require.Equal(t, table.Row{"2", "", "", "", "6"}, out.Rows[2])
	require.Equal(t, table.Row{"3", "1", formatFloat(math.Pi / 2), formatFloat(math.Pi / 2), "7"}, out.Rows[3])
}

func TestSpherical_HeaderOnlyAtRowZero(t *testing.T) {
	in := parse(t, "t,mx,my,mz", "1,magx,magy,magz", "2,1,,0")

	out, stats, err := transform.MapRows(in, NewSpherical(1))
	require.NoError(t, err)
	require.Equal(t, 2, stats.PassedThrough)
	require.Equal(t, table.Row{"1", "magx", "magy", "magz"}, out.Rows[1])
	require.Equal(t, table.Row{"2", "1", "", "0"}, out.Rows[2])

	_, _, err = transform.MapRows(in, NewSpherical(1), transform.WithShapePolicy(transform.ShapeStrict))
	require.Error(t, err)
}
