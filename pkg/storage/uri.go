package storage

import (
	"net/url"
	"path"
	"path/filepath"
)

const (
	FileScheme  = "file"
	StdioScheme = "stdio"
)

type URI url.URL

var (
	Stdin  = &URI{Scheme: StdioScheme, Opaque: "stdin"}
	Stdout = &URI{Scheme: StdioScheme, Opaque: "stdout"}
	Stderr = &URI{Scheme: StdioScheme, Opaque: "stderr"}
)

// ParseURI parses path as a URI.  A path without a scheme is a local file
// and "-" is standard input or output depending on use.
func ParseURI(s string) (*URI, error) {
	if s == "-" {
		return &URI{Scheme: StdioScheme, Opaque: "-"}, nil
	}
	u, err := url.Parse(s)
	// A one-letter scheme is a Windows drive.
	if err == nil && len(u.Scheme) > 1 {
		return (*URI)(u), nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return nil, err
	}
	return &URI{Scheme: FileScheme, Path: filepath.ToSlash(abs)}, nil
}

func MustParseURI(s string) *URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URI) String() string {
	return (*url.URL)(u).String()
}

// Filepath returns the local file path of a file URI.
func (u *URI) Filepath() string {
	return filepath.FromSlash(u.Path)
}

// Base returns the last element of the URI's path.
func (u *URI) Base() string {
	if u.Scheme == StdioScheme {
		return u.Opaque
	}
	return path.Base(u.Path)
}

func (u *URI) JoinPath(elem ...string) *URI {
	return (*URI)((*url.URL)(u).JoinPath(elem...))
}

func (u *URI) IsStdio() bool {
	return u.Scheme == StdioScheme
}
