package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// maxInflatedSize bounds how much a single block is allowed to inflate to,
// independent of any raw_size the header declares, so a corrupt or hostile
// compressed stream cannot exhaust memory before the size-mismatch warning
// in spec §4.3 ever gets a chance to fire.
const maxInflatedSize = 256 * 1024 * 1024 // 256MiB

// LZ4Codec compresses and decompresses using the LZ4 **frame** format
// (lz4.Reader / lz4.Writer), as required for flags low nibble 0x1. This is
// the streaming frame API, not the block API (lz4.CompressBlock /
// lz4.UncompressBlock): frame format carries its own block boundaries and
// lets the decoder inflate an untrusted buffer without first learning its
// exact decompressed size out of band.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an LZ4 frame-format codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress frames and compresses data. Used only by this package's codec
// round-trip tests, never by the decode pipeline.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: lz4 frame write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: lz4 frame close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates an LZ4 frame-format buffer. The output is capped at
// maxInflatedSize to bound memory consumption regardless of what the frame
// claims about its own content size.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := lz4.NewReader(bytes.NewReader(data))
	limited := io.LimitReader(r, maxInflatedSize+1)

	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("compress: lz4 frame decompress: %w", err)
	}

	if len(out) > maxInflatedSize {
		return nil, fmt.Errorf("compress: lz4 inflated output exceeds %d bytes", maxInflatedSize)
	}

	return out, nil
}
