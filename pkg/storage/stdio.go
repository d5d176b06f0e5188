package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrNotSupported = errors.New("operation not supported on stdio")

// StdioEngine reads standard input and writes standard output or error.
// Closing what it returns leaves the process's descriptors open.
type StdioEngine struct{}

var _ Engine = (*StdioEngine)(nil)

func NewStdioEngine() *StdioEngine {
	return &StdioEngine{}
}

func (*StdioEngine) Get(_ context.Context, u *URI) (io.ReadCloser, error) {
	switch u.Opaque {
	case "stdin", "-":
		return io.NopCloser(os.Stdin), nil
	}
	return nil, fmt.Errorf("cannot read from %s", u)
}

func (*StdioEngine) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	switch u.Opaque {
	case "stdout", "-":
		return &nopCloser{Writer: os.Stdout}, nil
	case "stderr":
		return &nopCloser{Writer: os.Stderr}, nil
	}
	return nil, fmt.Errorf("cannot write to %s", u)
}

func (*StdioEngine) Delete(context.Context, *URI) error {
	return ErrNotSupported
}

func (*StdioEngine) Exists(context.Context, *URI) (bool, error) {
	return true, nil
}

// nopCloser reports itself closed after Close so a writer factory
// refuses it, though the descriptor underneath stays open.
type nopCloser struct {
	io.Writer
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func (n *nopCloser) Closed() bool {
	return n.closed
}
