// Package factory provides the stax.Factory implementations and the alias
// registry that selects among them by name.
package factory

import (
	"fmt"
	"io"
	"os"

	"github.com/brimdata/stax"
	"github.com/brimdata/stax/xmlstream"
)

const DefaultIndent = "  "

// Default creates writers with the encoder's defaults: no indentation, no
// namespace repairing, and UTF-8 output.
type Default struct {
	Normalize bool
}

func (d Default) Create(sink io.Writer) (stax.StreamWriter, error) {
	if err := bind(sink); err != nil {
		return nil, err
	}
	return xmlstream.NewWriter(sink, xmlstream.WriterOpts{Normalize: d.Normalize}), nil
}

// Indent creates pretty-printing writers.  An empty Indent means
// DefaultIndent.
type Indent struct {
	Prefix    string
	Indent    string
	Normalize bool
}

func (i Indent) Create(sink io.Writer) (stax.StreamWriter, error) {
	if err := bind(sink); err != nil {
		return nil, err
	}
	indent := i.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	return xmlstream.NewWriter(sink, xmlstream.WriterOpts{
		Prefix:    i.Prefix,
		Indent:    indent,
		Normalize: i.Normalize,
	}), nil
}

// bind rejects sinks that cannot take output.  A closed *os.File is caught
// with an empty write, and any sink with a Closed method is asked directly.
// Other sinks are accepted as is and fail on first use.
func bind(sink io.Writer) error {
	if sink == nil {
		return fmt.Errorf("%w: nil sink", stax.ErrWriterConstruction)
	}
	switch s := sink.(type) {
	case *os.File:
		if _, err := s.Write(nil); err != nil {
			return fmt.Errorf("%w: %w", stax.ErrWriterConstruction, err)
		}
	case interface{ Closed() bool }:
		if s.Closed() {
			return fmt.Errorf("%w: sink is closed", stax.ErrWriterConstruction)
		}
	}
	return nil
}
