package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

//go:generate go tool mockgen -destination=./mock/mock.go -package=mock github.com/brimdata/stax/pkg/storage Engine

// Engine opens sources and sinks named by URI.  A sink returned by Put
// belongs to the caller, who must close it.
type Engine interface {
	Get(context.Context, *URI) (io.ReadCloser, error)
	Put(context.Context, *URI) (io.WriteCloser, error)
	Delete(context.Context, *URI) error
	Exists(context.Context, *URI) (bool, error)
}

var ErrUnsupportedScheme = errors.New("unsupported URI scheme")

// LocalEngine dispatches file and stdio URIs.
type LocalEngine struct {
	fs    *FileSystem
	stdio *StdioEngine
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine() *LocalEngine {
	return &LocalEngine{
		fs:    NewFileSystem(),
		stdio: NewStdioEngine(),
	}
}

func (l *LocalEngine) Get(ctx context.Context, u *URI) (io.ReadCloser, error) {
	e, err := l.engine(u)
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, u)
}

func (l *LocalEngine) Put(ctx context.Context, u *URI) (io.WriteCloser, error) {
	e, err := l.engine(u)
	if err != nil {
		return nil, err
	}
	return e.Put(ctx, u)
}

func (l *LocalEngine) Delete(ctx context.Context, u *URI) error {
	e, err := l.engine(u)
	if err != nil {
		return err
	}
	return e.Delete(ctx, u)
}

func (l *LocalEngine) Exists(ctx context.Context, u *URI) (bool, error) {
	e, err := l.engine(u)
	if err != nil {
		return false, err
	}
	return e.Exists(ctx, u)
}

func (l *LocalEngine) engine(u *URI) (Engine, error) {
	switch u.Scheme {
	case FileScheme:
		return l.fs, nil
	case StdioScheme:
		return l.stdio, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
