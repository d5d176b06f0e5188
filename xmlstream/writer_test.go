package xmlstream

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/brimdata/stax"
	"github.com/stretchr/testify/require"
)

type sink struct {
	bytes.Buffer
	closed bool
}

func (s *sink) Close() error {
	s.closed = true
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func wellFormed(t *testing.T, s string) []string {
	t.Helper()
	var names []string
	d := xml.NewDecoder(strings.NewReader(s))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return names
		}
		require.NoError(t, err)
		if start, ok := tok.(xml.StartElement); ok {
			names = append(names, start.Name.Local)
		}
	}
}

func TestWriterProducesWellFormedDocument(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WriterOpts{})
	require.NoError(t, w.WriteStartDocument())
	require.NoError(t, w.WriteStartElement("csv-xml", stax.Attr{Name: "rows", Value: "2"}))
	for _, v := range []string{"a,b", "<c>&d"} {
		require.NoError(t, w.WriteStartElement("record"))
		require.NoError(t, w.WriteCharacters(v))
		require.NoError(t, w.WriteEndElement())
	}
	require.NoError(t, w.WriteEndDocument())
	require.NoError(t, w.Close())
	require.Equal(t, []string{"csv-xml", "record", "record"}, wellFormed(t, buf.String()))
}

func TestWriterDepth(t *testing.T) {
	w := NewWriter(io.Discard, WriterOpts{})
	require.Equal(t, 0, w.Depth())
	require.NoError(t, w.WriteStartElement("a"))
	// A pending start tag is not open until something follows it.
	require.Equal(t, 0, w.Depth())
	require.NoError(t, w.WriteStartElement("b"))
	require.Equal(t, 1, w.Depth())
	require.NoError(t, w.WriteEndElement())
	require.Equal(t, 1, w.Depth())
	require.NoError(t, w.WriteEndDocument())
	require.Equal(t, 0, w.Depth())
}

func TestCloseDoesNotCloseSink(t *testing.T) {
	s := &sink{}
	w := NewWriter(s, WriterOpts{})
	require.NoError(t, w.WriteEmptyElement("root"))
	require.NoError(t, w.Close())
	require.False(t, s.closed)
	require.Equal(t, "<root></root>", s.String())
}

func TestCloseReportsUnclosedElement(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WriterOpts{})
	require.NoError(t, w.WriteStartElement("root"))
	err := w.Close()
	require.ErrorContains(t, err, "unclosed tag <root>")
	require.Equal(t, "<root>", buf.String())
}

func TestWriteAfterClose(t *testing.T) {
	w := NewWriter(io.Discard, WriterOpts{})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.ErrorIs(t, w.WriteStartElement("root"), stax.ErrWriterClosed)
	require.ErrorIs(t, w.WriteCharacters("x"), stax.ErrWriterClosed)
	require.ErrorIs(t, w.Flush(), stax.ErrWriterClosed)
}

func TestDuplicateAttribute(t *testing.T) {
	w := NewWriter(io.Discard, WriterOpts{})
	require.NoError(t, w.WriteStartElement("root", stax.Attr{Name: "a", Value: "1"}))
	require.ErrorContains(t, w.WriteAttribute("a", "2"), "duplicate attribute")
}

func TestSinkErrorSurfacesOnFlush(t *testing.T) {
	w := NewWriter(failingWriter{}, WriterOpts{})
	require.NoError(t, w.WriteEmptyElement("root"))
	require.ErrorContains(t, w.Flush(), "disk full")
}

func TestSetIndent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WriterOpts{})
	w.SetIndent("", "\t")
	require.Equal(t, WriterOpts{Indent: "\t"}, w.Opts())
	require.NoError(t, w.WriteStartElement("a"))
	require.NoError(t, w.WriteEmptyElement("b"))
	require.NoError(t, w.WriteEndDocument())
	require.Equal(t, "<a>\n\t<b></b>\n</a>", buf.String())
}
