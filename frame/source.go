package frame

import (
	"errors"
	"io"
)

// BufferSource adapts an in-memory byte slice to ByteSource. It is the
// typical source for tests and for small captures loaded fully into memory.
type BufferSource []byte

// Len implements ByteSource.
func (b BufferSource) Len() int64 { return int64(len(b)) }

// ReadAt implements ByteSource.
func (b BufferSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, errors.New("frame: ReadAt: offset out of range")
	}

	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}
