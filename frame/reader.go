package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/shootbywire/sbwdecode/errs"
)

// ByteSource is the external byte-addressable input the Frame Reader pulls
// from: sequential reads with a known total length (spec §6). *os.File and
// bytes.Reader both satisfy this via a thin io.ReaderAt + Len() wrapper.
type ByteSource interface {
	io.ReaderAt
	Len() int64
}

// Frame is one well-formed block yielded by Reader: a parsed header, the raw
// sealed payload bytes that follow it (nonce || ciphertext || tag), and the
// absolute byte offset where the header began.
type Frame struct {
	Header Header
	Sealed []byte
	Offset int64
}

// TerminalSkip describes why the Reader stopped before reaching a clean
// end-of-file: a truncated header, a truncated payload, or a header whose
// declared sizes cannot be satisfied by the remaining bytes. It is terminal:
// the format has no resynchronization marker, so the reader never attempts
// to recover mid-stream (spec §4.1).
type TerminalSkip struct {
	Reason  string
	BlockID uint16 // best-effort; zero if the header itself could not be parsed
	Err     error  // the errs sentinel Reason names, for errors.Is
}

func (t TerminalSkip) Error() string {
	return fmt.Sprintf("frame: terminal skip: %s", t.Reason)
}

// Unwrap exposes Err so errors.Is/errors.As reach the wrapped sentinel.
func (t TerminalSkip) Unwrap() error {
	return t.Err
}

// Reader slices a ByteSource into block frames. It is not safe for concurrent
// use and is not restartable: once Frames has been fully drained, create a
// new Reader to read again.
type Reader struct {
	src          ByteSource
	maxBlockSize uint32
	cursor       int64
	terminal     *TerminalSkip
	ioErr        error
}

// NewReader creates a Reader over src. maxBlockSize bounds compressed_size
// (spec's MAX_BLOCK_SIZE); pass 0 to use DefaultMaxBlockSize.
func NewReader(src ByteSource, maxBlockSize uint32) *Reader {
	if maxBlockSize == 0 {
		maxBlockSize = DefaultMaxBlockSize
	}

	return &Reader{src: src, maxBlockSize: maxBlockSize}
}

// Frames returns a sequence of well-formed frames. Iteration stops cleanly at
// end-of-file, at a terminal skip (see Terminal), or at an I/O error (see Err).
// Callers should check Err after the sequence is exhausted.
func (r *Reader) Frames() func(yield func(Frame) bool) {
	return func(yield func(Frame) bool) {
		for {
			f, ok, err := r.next()
			if err != nil {
				r.ioErr = err
				return
			}
			if !ok {
				return
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Terminal returns the reason iteration stopped before a clean end-of-file,
// or nil if the stream ended cleanly (or stopped on an I/O error instead).
func (r *Reader) Terminal() *TerminalSkip {
	return r.terminal
}

// Err returns the fatal I/O error that stopped iteration, if any.
func (r *Reader) Err() error {
	return r.ioErr
}

// BytesConsumed returns the total number of bytes the reader has advanced
// past: the headers and sealed payloads of every yielded frame. A partial
// trailing fragment inspected but not yielded is not counted.
func (r *Reader) BytesConsumed() int64 {
	return r.cursor
}

func (r *Reader) next() (Frame, bool, error) {
	if r.terminal != nil || r.ioErr != nil {
		return Frame{}, false, nil
	}

	remaining := r.src.Len() - r.cursor
	if remaining <= 0 {
		return Frame{}, false, nil
	}

	if remaining < HeaderSize {
		r.terminal = &TerminalSkip{Reason: "truncated_header", Err: errs.ErrTruncatedHeader}
		return Frame{}, false, nil
	}

	headerBuf := make([]byte, HeaderSize)
	if err := r.readFull(headerBuf, r.cursor); err != nil {
		return Frame{}, false, fmt.Errorf("frame: read header at offset %d: %w", r.cursor, err)
	}

	h, err := ParseHeader(headerBuf)
	if err != nil {
		// ParseHeader only fails on wrong-length input, which cannot happen here.
		return Frame{}, false, fmt.Errorf("frame: %w", err)
	}

	if h.NonceSize == 0 {
		r.terminal = &TerminalSkip{Reason: "truncated_header", BlockID: h.BlockID, Err: errs.ErrZeroNonceSize}
		return Frame{}, false, nil
	}

	if h.CompressedSize > r.maxBlockSize {
		r.terminal = &TerminalSkip{Reason: "truncated_header", BlockID: h.BlockID, Err: errs.ErrBlockTooLarge}
		return Frame{}, false, nil
	}

	need := int64(h.SealedPayloadSize())
	remaining = r.src.Len() - r.cursor - HeaderSize
	if remaining < need {
		r.terminal = &TerminalSkip{Reason: "truncated_payload", BlockID: h.BlockID, Err: errs.ErrTruncatedPayload}
		return Frame{}, false, nil
	}

	sealed := make([]byte, need)
	if err := r.readFull(sealed, r.cursor+HeaderSize); err != nil {
		return Frame{}, false, fmt.Errorf("frame: read sealed payload at offset %d: %w", r.cursor+HeaderSize, err)
	}

	offset := r.cursor
	r.cursor += HeaderSize + need

	return Frame{Header: h, Sealed: sealed, Offset: offset}, true, nil
}

func (r *Reader) readFull(buf []byte, at int64) error {
	n, err := r.src.ReadAt(buf, at)
	if n == len(buf) && (err == nil || errors.Is(err, io.EOF)) {
		return nil
	}

	return err
}
