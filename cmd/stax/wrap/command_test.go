package wrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, s string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWrapToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.xml")
	write(t, in, "a\nb & c\n")
	cmd := New()
	cmd.SetArgs([]string{"-q", "-o", out, "--element", "record", in})
	require.NoError(t, cmd.Execute())
	expected := `<?xml version="1.0" encoding="UTF-8"?><document><record>a</record><record>b &amp; c</record></document>`
	require.Equal(t, expected, read(t, out))
}

func TestWrapSplit(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	write(t, a, "1,2\n")
	write(t, b, "3,4\n")
	outDir := filepath.Join(dir, "out")
	cmd := New()
	cmd.SetArgs([]string{"-q", "--split", outDir, "--nodecl", "--number", a, b})
	require.NoError(t, cmd.Execute())
	require.Equal(t, `<document><line n="1">1,2</line></document>`, read(t, filepath.Join(outDir, "a.xml")))
	require.Equal(t, `<document><line n="1">3,4</line></document>`, read(t, filepath.Join(outDir, "b.xml")))
}

func TestWrapWithConfigAndLog(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.xml")
	conf := filepath.Join(dir, "stax.yaml")
	logPath := filepath.Join(dir, "stax.log")
	write(t, in, "x\n")
	write(t, conf, `writer-factory:
  alias: csv-indent-stream-writer
document:
  root: csv-xml
  element: record
  no-declaration: true
log:
  level: debug
  path: `+logPath+`
`)
	cmd := New()
	cmd.SetArgs([]string{"--config", conf, "-o", out, in})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "<csv-xml>\n  <record>x</record>\n</csv-xml>", read(t, out))
	log := read(t, logPath)
	require.Contains(t, log, `"msg":"writing"`)
	require.Contains(t, log, `"msg":"converted"`)
}

func TestWrapUnknownFactory(t *testing.T) {
	cmd := New()
	cmd.SetArgs([]string{"-q", "--factory", "csv-nope", "-o", filepath.Join(t.TempDir(), "x.xml")})
	require.ErrorContains(t, cmd.Execute(), "unknown writer factory")
}

func TestWrapMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xml")
	cmd := New()
	cmd.SetArgs([]string{"-q", "-o", out, filepath.Join(dir, "missing.txt")})
	require.Error(t, cmd.Execute())
}

func TestWrapSingleDashOptions(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	conf := filepath.Join(dir, "stax.yaml")
	logPath := filepath.Join(dir, "stax.log")
	outDir := filepath.Join(dir, "out")
	write(t, in, "x\n")
	write(t, conf, "document:\n  no-declaration: true\n")
	cmd := New()
	cmd.SetArgs([]string{"-config", conf, "-factory", "indent", "-split", outDir, "-log.level", "debug", "-log.path", logPath, in})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "<document>\n  <line>x</line>\n</document>", read(t, filepath.Join(outDir, "in.xml")))
	require.Contains(t, read(t, logPath), `"msg":"converted"`)
}

func TestWrapHelp(t *testing.T) {
	var out bytes.Buffer
	cmd := New()
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-h"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "-factory")
	require.Contains(t, out.String(), "-split")
	require.NotContains(t, out.String(), "--o")
}

func TestWrapUnknownOption(t *testing.T) {
	cmd := New()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-bogus"})
	require.ErrorContains(t, cmd.Execute(), "flag provided but not defined: -bogus")
}
