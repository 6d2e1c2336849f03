package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfuse/errs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}

func readFile(t *testing.T, dir, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), "\n")
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.csv", "t,x", "1.0,a", "1.0,b")
	writeFile(t, dir, "B.csv", "t,y", "1.0,c")
	metricsFile := filepath.Join(dir, "tsfuse.prom")

	_, err := execute(t, "merge", "--dir", dir, "--limit", "2", "-o", "out.csv",
		"--metrics-file", metricsFile, "A.csv", "B.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"t,Ax,By", "1.0,a,c", "1.0,b,"}, readFile(t, dir, "out.csv"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `tsfuse_runs_total{operation="merge",result="ok"} 1`)
}

func TestMergeCommand_DefaultLimitFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.csv", "t,x", "1.0,a", "1.0,b")
	cfgPath := filepath.Join(dir, "tsfuse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("capture_limit: 1\nlogging:\n  format: text\n"), 0o600))

	_, err := execute(t, "--config", cfgPath, "merge", "--dir", dir, "-o", "out.csv", "A.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"t,Ax", "1.0,a"}, readFile(t, dir, "out.csv"))
}

func TestColumnCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acc.csv", "Time,x,y", "10:00:00:5,1,2")

	_, err := execute(t, "column", "--dir", dir, "--column", "A", "--rewrite", "seconds", "-o", "a.csv", "acc.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Time,x,y", "36000.5,1,2"}, readFile(t, dir, "a.csv"))

	_, err = execute(t, "column", "--dir", dir, "--column", "B", "--rewrite", "drop", "-o", "b.csv", "a.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Time,y", "36000.5,2"}, readFile(t, dir, "b.csv"))

	_, err = execute(t, "column", "--dir", dir, "--rewrite", "elapsed", "-o", "c.csv", "b.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Clock Time (s),Elapsed Time (s),y", "36000.5,0,2"}, readFile(t, dir, "c.csv"))
}

func TestColumnCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acc.csv", "Time,x", "1")

	_, err := execute(t, "column", "--dir", dir, "--rewrite", "upper", "-o", "a.csv", "acc.csv")
	require.ErrorIs(t, err, errs.ErrUnsupportedRewriter)

	_, err = execute(t, "column", "--dir", dir, "--column", "B", "--rewrite", "drop", "--strict", "-o", "a.csv", "acc.csv")
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	_, err = execute(t, "column", "--dir", dir, "--rewrite", "drop", "-o", "a.csv", "missing.csv")
	require.ErrorIs(t, err, errs.ErrMissingInput)

	_, err = execute(t, "column", "--dir", dir, "--rewrite", "drop", "acc.csv")
	require.Error(t, err)
}

func TestConcatTrimHeadSpherical(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "t,x", "1,", "2,b", "3,c", "4,")
	writeFile(t, dir, "b.csv", "mx,my,mz", "0,0,2")

	_, err := execute(t, "concat", "--dir", dir, "-o", "u.csv", "a.csv", "b.csv")
	require.NoError(t, err)
	require.Equal(t, "t,x,mx,my,mz", readFile(t, dir, "u.csv")[0])

	_, err = execute(t, "trim", "--dir", dir, "-o", "t.csv", "a.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"t,x", "2,b", "3,c"}, readFile(t, dir, "t.csv"))

	_, err = execute(t, "head", "--dir", dir, "-n", "2", "-o", "h.csv", "a.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"t,x", "1,"}, readFile(t, dir, "h.csv"))

	_, err = execute(t, "spherical", "--dir", dir, "--column", "A", "-o", "s.csv", "b.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"mr,mtheta,mphi", "2,0,0"}, readFile(t, dir, "s.csv"))
}

func TestSensorsCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acc.csv", "Time,ax,ay,az", "10:00:00:0,1,2,3")
	writeFile(t, dir, "gyr.csv", "Time,gx,gy,gz", "10:00:00:0,4,5,6")
	writeFile(t, dir, "mag.csv", "Time,mx,my,mz,temp", "10:00:00:0,0,0,1,20")
	outDir := filepath.Join(dir, "out")

	stdout, err := execute(t, "--log-level", "warn", "sensors", "--dir", dir, "--out-dir", outDir)
	require.NoError(t, err)
	require.Contains(t, stdout, filepath.Join(outDir, "C-readable.csv"))

	require.Equal(t, []string{
		"Time,mmx,mmy,mmz,ggx,ggy,ggz,aax,aay,aaz",
		"36000.0,0,0,1,4,5,6,1,2,3",
	}, readFile(t, outDir, "C-readable.csv"))
	require.FileExists(t, filepath.Join(outDir, "human-readable-first-1000.csv"))
}

func TestInvalidLogFlags(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "trim", "-o", "x.csv", "y.csv")
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}
