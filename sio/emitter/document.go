// Package emitter writes text lines as XML documents through writers
// obtained from a stax.Factory.
package emitter

import (
	"context"
	"io"
	"strconv"

	"github.com/brimdata/stax"
	"github.com/brimdata/stax/pkg/storage"
	"github.com/brimdata/stax/sio/lineio"
)

const (
	DefaultRoot    = "document"
	DefaultElement = "line"
)

type Opts struct {
	Root    string
	Element string
	// NoDeclaration omits the XML declaration.
	NoDeclaration bool
	// Number adds an attribute n holding each line's number.
	Number bool
}

func (o Opts) withDefaults() Opts {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.Element == "" {
		o.Element = DefaultElement
	}
	return o
}

// Document wraps each line it is given in an element beneath a single root.
// The prolog and root are written with the first line, or by Close if there
// were no lines.
type Document struct {
	writer stax.StreamWriter
	sink   io.Closer
	opts   Opts
	begun  bool
	lines  int
}

// NewDocument writes to w.  Closing the Document closes w but not w's sink.
func NewDocument(w stax.StreamWriter, opts Opts) *Document {
	return &Document{
		writer: w,
		opts:   opts.withDefaults(),
	}
}

// NewFile opens u with engine and binds a writer from factory to it.  The
// Document owns the sink and closes it after the writer.
func NewFile(ctx context.Context, engine storage.Engine, u *storage.URI, factory stax.Factory, opts Opts) (*Document, error) {
	sink, err := engine.Put(ctx, u)
	if err != nil {
		return nil, err
	}
	w, err := factory.Create(sink)
	if err != nil {
		sink.Close()
		return nil, err
	}
	d := NewDocument(w, opts)
	d.sink = sink
	return d, nil
}

func (d *Document) WriteLine(line string) error {
	if err := d.begin(); err != nil {
		return err
	}
	d.lines++
	var attrs []stax.Attr
	if d.opts.Number {
		attrs = append(attrs, stax.Attr{Name: "n", Value: strconv.Itoa(d.lines)})
	}
	if err := d.writer.WriteStartElement(d.opts.Element, attrs...); err != nil {
		return err
	}
	if line != "" {
		if err := d.writer.WriteCharacters(line); err != nil {
			return err
		}
	}
	return d.writer.WriteEndElement()
}

// Lines returns the number of lines written.
func (d *Document) Lines() int {
	return d.lines
}

func (d *Document) Close() error {
	err := d.begin()
	if err == nil {
		err = d.writer.WriteEndDocument()
	}
	if closeErr := d.writer.Close(); err == nil {
		err = closeErr
	}
	if d.sink != nil {
		if closeErr := d.sink.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func (d *Document) begin() error {
	if d.begun {
		return nil
	}
	d.begun = true
	if !d.opts.NoDeclaration {
		if err := d.writer.WriteStartDocument(); err != nil {
			return err
		}
	}
	return d.writer.WriteStartElement(d.opts.Root)
}

// Copy writes each line from r to d until r is exhausted or ctx is done.
func Copy(ctx context.Context, d *Document, r *lineio.Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.Read()
		if err != nil || line == nil {
			return err
		}
		if err := d.WriteLine(*line); err != nil {
			return err
		}
	}
}

