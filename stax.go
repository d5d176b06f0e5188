// Package stax defines the streaming XML writer abstraction and the factory
// role that binds writers to output sinks.
//
// A Factory is selected by alias (see package factory) and asked to Create
// a StreamWriter for an already-open sink.  The sink belongs to the caller:
// neither the factory nor the writer ever closes it.
package stax

import (
	"errors"
	"io"
)

var (
	// ErrWriterConstruction is wrapped by every error a Factory returns when
	// it cannot bind a writer to a sink.
	ErrWriterConstruction = errors.New("cannot construct XML stream writer")
	ErrWriterClosed       = errors.New("XML stream writer is closed")
	ErrNoOpenElement      = errors.New("no open element")
	ErrNoStartElement     = errors.New("attribute written outside of a start element")
)

// Attr is an attribute of a start element.
type Attr struct {
	Name  string
	Value string
}

// StreamWriter emits XML sequentially to a sink without building a tree.
//
// A start element stays pending until the next structural call so that
// WriteAttribute may add to it.  Implementations are not safe for concurrent
// use.
type StreamWriter interface {
	WriteStartDocument() error
	WriteStartElement(name string, attrs ...Attr) error
	WriteAttribute(name, value string) error
	WriteEmptyElement(name string, attrs ...Attr) error
	WriteCharacters(text string) error
	WriteComment(text string) error
	WriteEndElement() error
	// WriteEndDocument closes every element that is still open.
	WriteEndDocument() error
	Flush() error
	// Close flushes the writer and releases it.  It does not close the sink.
	Close() error
	// Depth returns the number of open elements.
	Depth() int
}

// Factory creates a StreamWriter bound to sink.
type Factory interface {
	Create(sink io.Writer) (StreamWriter, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(io.Writer) (StreamWriter, error)

func (f FactoryFunc) Create(sink io.Writer) (StreamWriter, error) {
	return f(sink)
}
