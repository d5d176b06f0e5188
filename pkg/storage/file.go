package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type FileSystem struct {
	perm os.FileMode

	existsMu sync.RWMutex
	exists   map[string]struct{}
}

var _ Engine = (*FileSystem)(nil)

func NewFileSystem() *FileSystem {
	return &FileSystem{
		perm:   0666,
		exists: make(map[string]struct{}),
	}
}

func (f *FileSystem) Get(_ context.Context, u *URI) (io.ReadCloser, error) {
	r, err := os.Open(u.Filepath())
	if err != nil {
		return nil, fileErr(err)
	}
	return r, nil
}

// Put creates or truncates the file at u, making parent directories as
// needed.
func (f *FileSystem) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	path := u.Filepath()
	if err := f.checkPath(path); err != nil {
		return nil, fileErr(err)
	}
	w, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, f.perm)
	if err != nil {
		return nil, fileErr(err)
	}
	return w, nil
}

func (f *FileSystem) Delete(_ context.Context, u *URI) error {
	return fileErr(os.Remove(u.Filepath()))
}

func (f *FileSystem) Exists(_ context.Context, u *URI) (bool, error) {
	_, err := os.Stat(u.Filepath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fileErr(err)
	}
	return true, nil
}

func (f *FileSystem) checkPath(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	f.existsMu.RLock()
	_, ok := f.exists[dir]
	f.existsMu.RUnlock()
	if ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f.existsMu.Lock()
	f.exists[dir] = struct{}{}
	f.existsMu.Unlock()
	return nil
}

func fileErr(err error) error {
	if os.IsNotExist(err) {
		return fs.ErrNotExist
	}
	return err
}
