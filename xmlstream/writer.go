// Package xmlstream implements stax.StreamWriter on top of the token
// encoder in encoding/xml.
package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/brimdata/stax"
	"golang.org/x/text/unicode/norm"
)

const declaration = `version="1.0" encoding="UTF-8"`

// WriterOpts configures a Writer.  The zero value gives the encoder's
// defaults: no indentation and character data passed through as is.
type WriterOpts struct {
	Prefix string
	Indent string
	// Normalize puts character data and attribute values in Unicode
	// normalization form C before they are escaped.
	Normalize bool
}

type Writer struct {
	encoder *xml.Encoder
	opts    WriterOpts
	pending *xml.StartElement
	open    []xml.Name
	started bool
	closed  bool
}

var _ stax.StreamWriter = (*Writer)(nil)

func NewWriter(w io.Writer, opts WriterOpts) *Writer {
	encoder := xml.NewEncoder(w)
	encoder.Indent(opts.Prefix, opts.Indent)
	return &Writer{
		encoder: encoder,
		opts:    opts,
	}
}

// SetIndent changes the indentation of subsequent output.  Empty prefix and
// indent turn indentation off.
func (w *Writer) SetIndent(prefix, indent string) {
	w.opts.Prefix, w.opts.Indent = prefix, indent
	w.encoder.Indent(prefix, indent)
}

func (w *Writer) Opts() WriterOpts {
	return w.opts
}

func (w *Writer) Depth() int {
	return len(w.open)
}

func (w *Writer) WriteStartDocument() error {
	if err := w.check(); err != nil {
		return err
	}
	if w.started || w.pending != nil {
		return errors.New("XML declaration must be the first thing written")
	}
	if err := w.encode(xml.ProcInst{Target: "xml", Inst: []byte(declaration)}); err != nil {
		return err
	}
	if w.indenting() {
		// The encoder only breaks lines before elements it has already
		// indented, so the root would otherwise share the prolog's line.
		return w.encode(xml.CharData("\n"))
	}
	return nil
}

func (w *Writer) WriteStartElement(name string, attrs ...stax.Attr) error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if err := CheckName("element", name); err != nil {
		return err
	}
	w.pending = &xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		if err := w.addAttr(a.Name, a.Value); err != nil {
			w.pending = nil
			return err
		}
	}
	return nil
}

func (w *Writer) WriteAttribute(name, value string) error {
	if err := w.check(); err != nil {
		return err
	}
	if w.pending == nil {
		return fmt.Errorf("%w: %s", stax.ErrNoStartElement, name)
	}
	return w.addAttr(name, value)
}

func (w *Writer) WriteEmptyElement(name string, attrs ...stax.Attr) error {
	if err := w.WriteStartElement(name, attrs...); err != nil {
		return err
	}
	return w.WriteEndElement()
}

func (w *Writer) WriteCharacters(text string) error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	return w.encode(xml.CharData(w.normalize(text)))
}

func (w *Writer) WriteComment(text string) error {
	if err := w.check(); err != nil {
		return err
	}
	if strings.Contains(text, "--") || strings.HasSuffix(text, "-") {
		return fmt.Errorf("invalid comment %q", text)
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	return w.encode(xml.Comment(text))
}

func (w *Writer) WriteEndElement() error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if len(w.open) == 0 {
		return stax.ErrNoOpenElement
	}
	name := w.open[len(w.open)-1]
	if err := w.encode(xml.EndElement{Name: name}); err != nil {
		return err
	}
	w.open = w.open[:len(w.open)-1]
	return nil
}

func (w *Writer) WriteEndDocument() error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	for len(w.open) > 0 {
		if err := w.WriteEndElement(); err != nil {
			return err
		}
	}
	return w.encoder.Flush()
}

func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	return w.encoder.Flush()
}

// Close flushes buffered output and reports elements left open.  The
// underlying io.Writer is not closed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	err := w.flushPending()
	w.closed = true
	if closeErr := w.encoder.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (w *Writer) check() error {
	if w.closed {
		return stax.ErrWriterClosed
	}
	return nil
}

func (w *Writer) addAttr(name, value string) error {
	if err := CheckName("attribute", name); err != nil {
		return err
	}
	for _, a := range w.pending.Attr {
		if a.Name.Local == name {
			return fmt.Errorf("duplicate attribute %q on element %q", name, w.pending.Name.Local)
		}
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: w.normalize(value),
	})
	return nil
}

func (w *Writer) flushPending() error {
	if w.pending == nil {
		return nil
	}
	start := *w.pending
	w.pending = nil
	if err := w.encode(start); err != nil {
		return err
	}
	w.open = append(w.open, start.Name)
	return nil
}

func (w *Writer) encode(t xml.Token) error {
	w.started = true
	return w.encoder.EncodeToken(t)
}

func (w *Writer) indenting() bool {
	return w.opts.Prefix != "" || w.opts.Indent != ""
}

func (w *Writer) normalize(s string) string {
	if w.opts.Normalize {
		return norm.NFC.String(s)
	}
	return s
}

// CheckName accepts names made of letters, digits, and the punctuation XML
// allows in names.  Prefixed names are written verbatim since the writer does
// not repair namespaces.
func CheckName(what, name string) error {
	if name == "" {
		return fmt.Errorf("%s name is empty", what)
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_', r == ':':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return fmt.Errorf("invalid %s name %q", what, name)
		}
	}
	return nil
}
