package emitter

import (
	"bytes"

	"github.com/brimdata/stax"
)

// Bytes builds a document in memory.
type Bytes struct {
	*Document
	buf bytes.Buffer
}

func NewBytes(factory stax.Factory, opts Opts) (*Bytes, error) {
	b := &Bytes{}
	w, err := factory.Create(&b.buf)
	if err != nil {
		return nil, err
	}
	b.Document = NewDocument(w, opts)
	return b, nil
}

func (b *Bytes) Bytes() []byte {
	return b.buf.Bytes()
}
