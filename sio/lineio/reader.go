// Package lineio reads text one line at a time.
package lineio

import (
	"bufio"
	"io"
)

const MaxLineSize = 25 * 1024 * 1024

// Reader returns the lines of its input without line terminators.
type Reader struct {
	scanner *bufio.Scanner
	line    string
	n       int
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(nil, MaxLineSize)
	return &Reader{scanner: s}
}

// Read returns the next line and a nil error, a nil line and the next error,
// or a nil line and nil error at end of input.  The returned pointer is valid
// until the next Read.
func (r *Reader) Read() (*string, error) {
	if !r.scanner.Scan() || r.scanner.Err() != nil {
		return nil, r.scanner.Err()
	}
	r.n++
	r.line = r.scanner.Text()
	return &r.line, nil
}

// Line returns the number of the line last read, counting from one.
func (r *Reader) Line() int {
	return r.n
}
