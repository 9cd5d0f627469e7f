package frame

import (
	"github.com/shootbywire/sbwdecode/endian"
	"github.com/shootbywire/sbwdecode/errs"
)

// HeaderSize is the fixed size, in bytes, of a block header.
const HeaderSize = 12

// TagSize is the size, in bytes, of the AES-GCM authentication tag appended
// to every sealed payload.
const TagSize = 16

// DefaultMaxBlockSize is the default upper bound on a block's compressed_size,
// used when a pipeline.Config does not override it.
const DefaultMaxBlockSize = 64 * 1024 * 1024 // 64 MiB

// Header is the fixed 12-byte block header described in spec §3.
//
//	offset 0-3   RawSize         uint32 LE  expected plaintext length
//	offset 4-7   CompressedSize  uint32 LE  ciphertext length, excludes nonce and tag
//	offset 8     Flags           uint8      compression algorithm (low nibble) + reserved bits
//	offset 9     NonceSize       uint8      MUST equal 12 for EN-1.0
//	offset 10-11 BlockID         uint16 LE  monotonically increasing, not assumed unique
type Header struct {
	RawSize        uint32
	CompressedSize uint32
	Flags          uint8
	NonceSize      uint8
	BlockID        uint16
}

// CompressionNibble returns the low nibble of Flags, which selects the
// decompression algorithm (format.CompressionAlgorithm).
func (h Header) CompressionNibble() uint8 {
	return h.Flags & 0x0F
}

// ReservedBitsSet reports whether any of the upper flag bits (4-7) are set.
// Per spec §9 these are reserved and MUST be zero for forward compatibility;
// a set bit is a warning, not an error.
func (h Header) ReservedBitsSet() bool {
	return h.Flags&0xF0 != 0
}

// SealedPayloadSize returns the number of bytes following the header for this
// block: nonce + ciphertext + tag.
func (h Header) SealedPayloadSize() int {
	return int(h.NonceSize) + int(h.CompressedSize) + TagSize
}

// ParseHeader parses a 12-byte header from data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h := Header{
		RawSize:        engine.Uint32(data[0:4]),
		CompressedSize: engine.Uint32(data[4:8]),
		Flags:          data[8],
		NonceSize:      data[9],
		BlockID:        engine.Uint16(data[10:12]),
	}

	return h, nil
}
