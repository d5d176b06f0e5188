package xmlstream

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// A golden case drives a Writer through ops and compares what it wrote
// with output, or the first error with error.
type goldenCase struct {
	Opts struct {
		Prefix    string `yaml:"prefix"`
		Indent    string `yaml:"indent"`
		Normalize bool   `yaml:"normalize"`
	} `yaml:"opts"`
	Ops    []goldenOp `yaml:"ops"`
	Output string     `yaml:"output"`
	Error  string     `yaml:"error"`
}

type goldenOp struct {
	Op    string `yaml:"op"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			b, err := os.ReadFile(path)
			require.NoError(t, err)
			var c goldenCase
			require.NoError(t, yaml.UnmarshalWithOptions(b, &c, yaml.DisallowUnknownField()))
			var buf bytes.Buffer
			w := NewWriter(&buf, WriterOpts{
				Prefix:    c.Opts.Prefix,
				Indent:    c.Opts.Indent,
				Normalize: c.Opts.Normalize,
			})
			err = runOps(w, c.Ops)
			if c.Error != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), c.Error)
				return
			}
			require.NoError(t, err)
			require.NoError(t, w.Close())
			if actual := buf.String(); actual != c.Output {
				t.Fatalf("output mismatch:\n%s", diff(c.Output, actual))
			}
		})
	}
}

func runOps(w *Writer, ops []goldenOp) error {
	for _, op := range ops {
		var err error
		switch op.Op {
		case "start-document":
			err = w.WriteStartDocument()
		case "start":
			err = w.WriteStartElement(op.Name)
		case "attr":
			err = w.WriteAttribute(op.Name, op.Value)
		case "empty":
			err = w.WriteEmptyElement(op.Name)
		case "chars":
			err = w.WriteCharacters(op.Value)
		case "comment":
			err = w.WriteComment(op.Value)
		case "end":
			err = w.WriteEndElement()
		case "end-document":
			err = w.WriteEndDocument()
		default:
			err = fmt.Errorf("unknown op %q", op.Op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func diff(expected, actual string) string {
	s, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return s
}
