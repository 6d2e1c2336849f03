package merge

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/table"
)

func mustParse(t *testing.T, name string, lines ...string) *table.Table {
	t.Helper()
	tbl, err := table.Parse(name, lines, ",")
	require.NoError(t, err)

	return tbl
}

func TestByIndex_Example(t *testing.T) {
	a := mustParse(t, "A", "t,x", "1.0,a", "1.0,b")
	b := mustParse(t, "B", "t,y", "1.0,c")

	out, report, err := ByIndex([]*table.Table{a, b}, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"t,Ax,By", "1.0,a,c", "1.0,b,"}, out.Lines())

	require.Equal(t, 3, report.Rows)
	require.Equal(t, 1, report.Groups)
	require.Equal(t, 1, report.Padded)
	require.Equal(t, 2, report.Emitted)
	require.Zero(t, report.Skipped.Total())
	require.Zero(t, report.Discarded)
	require.Empty(t, report.DuplicateColumns)
}

func TestByIndex_KeyOrdering(t *testing.T) {
	a := mustParse(t, "a", "t,x", "3,a3", "1,a1", "10,a10", "-2,a-2")
	g := mustParse(t, "g", "t,y", "2,g2", "1e1,g10", "0.5,g05")

	out, _, err := ByIndex([]*table.Table{a, g}, Unlimited)
	require.NoError(t, err)

	prev := math.Inf(-1)
	for _, row := range out.Data() {
		v, err := strconv.ParseFloat(row[0], 64)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}

	require.Equal(t, []string{
		"t,ax,gy",
		"-2,a-2,",
		"0.5,,g05",
		"1,a1,",
		"2,,g2",
		"3,a3,",
		"10,a10,g10",
	}, out.Lines())
}

func TestByIndex_KeyTextFromFirstRow(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1.0,p")
	b := mustParse(t, "b", "t,y", "1,q", "1.00,r")

	out, _, err := ByIndex([]*table.Table{a, b}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, []string{"t,ax,by", "1.0,p,q", "1.0,,r"}, out.Lines())
}

func TestByIndex_SignedZero(t *testing.T) {
	a := mustParse(t, "a", "t,x", "0,pos", "-0,neg")

	out, report, err := ByIndex([]*table.Table{a}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, 2, report.Groups)
	require.Equal(t, []string{"t,ax", "-0,neg", "0,pos"}, out.Lines())
}

func TestByIndex_RowConservation(t *testing.T) {
	acc := mustParse(t, "acc", "t,ax,ay", "1,1,1", "2,2,2")
	gyr := mustParse(t, "gyr", "t,gx,gy,gz", "1,a,b,c", "1,d,e,f", "1,g,h,i", "2,j,k,l")
	mag := mustParse(t, "mag", "t,m", "2,x", "2,y")

	out, report, err := ByIndex([]*table.Table{acc, gyr, mag}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, 2, report.Groups)
	require.Equal(t, 5, report.Emitted)
	require.Equal(t, report.Emitted, len(out.Data()))

	require.Equal(t, []string{
		"t,accax,accay,gyrgx,gyrgy,gyrgz,magm",
		"1,1,1,a,b,c,",
		"1,,,d,e,f,",
		"1,,,g,h,i,",
		"2,2,2,j,k,l,x",
		"2,,,,,,y",
	}, out.Lines())

	// acc: 2 pads at key 1, 1 at key 2; gyr: 1 at key 2; mag: 3 at key 1
	require.Equal(t, 7, report.Padded)
	for _, row := range out.Rows {
		require.Len(t, row, 7)
	}
}

func TestByIndex_CaptureLimit(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a1", "2,a2")
	g := mustParse(t, "g", "t,y", "1,g1", "1,g2", "1,g3", "2,g4", "2,g5")

	out, report, err := ByIndex([]*table.Table{a, g}, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"t,ax,gy", "1,a1,g1", "2,a2,g4"}, out.Lines())
	require.Equal(t, 3, report.Discarded)

	out, report, err = ByIndex([]*table.Table{a, g}, 2)
	require.NoError(t, err)
	require.Equal(t, 4, len(out.Data()))
	require.Equal(t, 1, report.Discarded)

	for _, limit := range []int{1, 2, 3} {
		out, _, err := ByIndex([]*table.Table{g}, limit)
		require.NoError(t, err)

		perKey := map[string]int{}
		for _, row := range out.Data() {
			perKey[row[0]]++
		}
		for k, n := range perKey {
			require.LessOrEqual(t, n, limit, "key %s", k)
		}
	}
}

func TestByIndex_InvalidCaptureLimit(t *testing.T) {
	a := mustParse(t, "a", "t,x")

	_, _, err := ByIndex([]*table.Table{a}, -1)
	require.ErrorIs(t, err, errs.ErrInvalidCaptureLimit)
}

func TestByIndex_MalformedRows(t *testing.T) {
	clean := mustParse(t, "a", "t,x", "1,a", "2,b", "3,c")
	dirty := mustParse(t, "a", "t,x", "1,a", "2,b", "oops,z", "3,c")

	want, _, err := ByIndex([]*table.Table{clean}, Unlimited)
	require.NoError(t, err)

	got, report, err := ByIndex([]*table.Table{dirty}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, want.Lines(), got.Lines())
	require.Equal(t, 1, report.Skipped.NotNumeric)

	withExtra := mustParse(t, "a", "t,x", "1,a", "2,b", "3,c", "4,d")
	more, _, err := ByIndex([]*table.Table{withExtra}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, more.Len()-1, got.Len())
}

func TestByIndex_SkipReasons(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a", "17", "", "NaN,n", "x1,b", " 2 ,c", "1e999,big")

	out, report, err := ByIndex([]*table.Table{a}, Unlimited)
	require.NoError(t, err)

	require.Equal(t, 7, report.Rows)
	require.Equal(t, 2, report.Skipped.NoSeparator)
	require.Equal(t, 1, report.Skipped.NotNumeric)
	require.Equal(t, 1, report.Skipped.NaN)
	require.Equal(t, 4, report.Skipped.Total())
	require.Equal(t, []string{"t,ax", "1,a", " 2 ,c", "1e999,big"}, out.Lines())
}

func TestByIndex_EmptySourceContributesWidth(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a")
	e := mustParse(t, "e", "t,p,q")

	out, report, err := ByIndex([]*table.Table{a, e}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, []string{"t,ax,ep,eq", "1,a,,"}, out.Lines())
	require.Equal(t, 1, report.Padded)
}

func TestByIndex_RaggedRowsNotRepaired(t *testing.T) {
	a := mustParse(t, "a", "t,x,y", "1,only")
	b := mustParse(t, "b", "t,z", "1,z1")

	out, _, err := ByIndex([]*table.Table{a, b}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, []string{"t,ax,ay,bz", "1,only,z1"}, out.Lines())
}

func TestByIndex_DuplicateColumns(t *testing.T) {
	a := mustParse(t, "acc", "t,x", "1,a")
	b := mustParse(t, "acc", "t,x", "1,b")

	out, report, err := ByIndex([]*table.Table{a, b}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, "t,accx,accx", out.Lines()[0])
	require.Equal(t, []string{"accx"}, report.DuplicateColumns)
}

func TestByIndex_Options(t *testing.T) {
	a := mustParse(t, "acc", "Time,x", "1,a")
	b := mustParse(t, "gyr", "Time,y", "1,b")

	out, _, err := ByIndex([]*table.Table{a, b}, Unlimited, WithKeyHeader("Clock"), WithoutSourcePrefix())
	require.NoError(t, err)
	require.Equal(t, []string{"Clock,x,y", "1,a,b"}, out.Lines())

	_, _, err = ByIndex([]*table.Table{a}, Unlimited, WithKeyHeader(""))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestByIndex_Errors(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a")

	_, _, err := ByIndex(nil, Unlimited)
	require.ErrorIs(t, err, errs.ErrNoSources)

	_, _, err = ByIndex([]*table.Table{a, table.New("empty", ",")}, Unlimited)
	require.ErrorIs(t, err, errs.ErrMissingHeader)

	_, _, err = ByIndex([]*table.Table{a, nil}, Unlimited)
	require.ErrorIs(t, err, errs.ErrMissingHeader)

	semi, err := table.Parse("s", []string{"t;y", "1;b"}, ";")
	require.NoError(t, err)
	_, _, err = ByIndex([]*table.Table{a, semi}, Unlimited)
	require.ErrorIs(t, err, errs.ErrSeparatorMismatch)
}

func TestByIndex_InputsUntouched(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a", "1,b")
	b := mustParse(t, "b", "t,y", "1,c")
	aBefore, bBefore := a.Clone(), b.Clone()

	_, _, err := ByIndex([]*table.Table{a, b}, Unlimited)
	require.NoError(t, err)
	require.Equal(t, aBefore, a)
	require.Equal(t, bBefore, b)
}

func TestUniform(t *testing.T) {
	a := mustParse(t, "a", "t,x", "1,a", "2")
	b := mustParse(t, "b", "p,q,r", "x,y,z", "u,v,w", "s")

	out, err := Uniform([]*table.Table{a, b})
	require.NoError(t, err)
	require.Equal(t, []string{
		"t,x,p,q,r",
		"1,a,x,y,z",
		"2,,u,v,w",
		",,s,,",
	}, out.Lines())
}

func TestUniform_SingleTable(t *testing.T) {
	a := mustParse(t, "a", "t,x,y", "1,a", "2,b,c")

	out, err := Uniform([]*table.Table{a})
	require.NoError(t, err)
	require.Equal(t, []string{"t,x,y", "1,a,", "2,b,c"}, out.Lines())

	again, err := Uniform([]*table.Table{out})
	require.NoError(t, err)
	require.Equal(t, out.Lines(), again.Lines())
	require.Equal(t, []string{"t,x,y", "1,a", "2,b,c"}, a.Lines())
}

func TestUniform_Errors(t *testing.T) {
	_, err := Uniform(nil)
	require.ErrorIs(t, err, errs.ErrNoSources)

	a := mustParse(t, "a", "t,x")
	semi, err := table.Parse("s", []string{"t;y"}, ";")
	require.NoError(t, err)
	_, err = Uniform([]*table.Table{a, semi})
	require.ErrorIs(t, err, errs.ErrSeparatorMismatch)
}

func TestCompareKeys(t *testing.T) {
	negZero := math.Copysign(0, -1)

	require.Equal(t, -1, compareKeys(1, 2))
	require.Equal(t, 1, compareKeys(2, 1))
	require.Equal(t, 0, compareKeys(1, 1))
	require.Equal(t, -1, compareKeys(negZero, 0))
	require.Equal(t, 1, compareKeys(0, negZero))
	require.Equal(t, -1, compareKeys(math.Inf(-1), -1e308))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		cell   string
		want   float64
		status keyStatus
	}{
		{"1.5", 1.5, keyOK},
		{" 2 ", 2, keyOK},
		{"1e999", math.Inf(1), keyOK},
		{"-1e999", math.Inf(-1), keyOK},
		{"1e-999", 0, keyOK},
		{"abc", 0, keyNotNumeric},
		{"", 0, keyNotNumeric},
		{"nan", 0, keyNaN},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			v, status := parseKey(tt.cell)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestRowKey(t *testing.T) {
	tests := []struct {
		name   string
		row    []string
		want   float64
		status keyStatus
	}{
		{"empty row", nil, 0, keyNoSeparator},
		{"key only", []string{"1.0"}, 0, keyNoSeparator},
		{"key and cell", []string{"1.0", "a"}, 1, keyOK},
		{"text key", []string{"t", "a"}, 0, keyNotNumeric},
		{"nan key", []string{"NaN", "a"}, 0, keyNaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, status := rowKey(tt.row)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.want, v)
		})
	}
}
