// Package testencoder seals TLV-encoded plaintext into valid LG-1.0/EN-1.0
// blocks so tests can exercise the full decode pipeline against
// deterministically constructed input rather than hand-built byte slices.
//
// This package is test-only: the spec's Non-goals exclude production
// encoding, and nothing here is exported outside _test.go files by
// convention even though Go itself does not enforce that boundary.
package testencoder

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/shootbywire/sbwdecode/endian"
	"github.com/shootbywire/sbwdecode/format"
)

// Block describes one block to seal: its id, flags (compression nibble plus
// any reserved bits to set), and the TLV-encoded plaintext it carries.
type Block struct {
	BlockID   uint16
	Flags     uint8
	Plaintext []byte
}

// Encoder seals Blocks into the wire format the Frame Reader and Crypto
// Unsealer expect, using a fixed key supplied at construction.
type Encoder struct {
	gcm cipher.AEAD
}

// NewEncoder builds an Encoder for key, which must be exactly 32 bytes.
func NewEncoder(key []byte) (*Encoder, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("testencoder: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("testencoder: %w", err)
	}

	return &Encoder{gcm: gcm}, nil
}

// Seal compresses b.Plaintext per b.Flags' low nibble, encrypts it, and
// returns the complete 12-byte-header-plus-sealed-payload block bytes ready
// to be concatenated into a capture file.
func (e *Encoder) Seal(b Block) ([]byte, error) {
	compressed, err := compress(b.Plaintext, format.CompressionAlgorithm(b.Flags&0x0F))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("testencoder: generate nonce: %w", err)
	}

	sealed := e.gcm.Seal(nil, nonce, compressed, nil)

	engine := endian.GetLittleEndianEngine()
	header := make([]byte, 12)
	engine.PutUint32(header[0:4], uint32(len(b.Plaintext))) //nolint:gosec // test-only, lengths are small
	engine.PutUint32(header[4:8], uint32(len(compressed)))  //nolint:gosec // test-only, lengths are small
	header[8] = b.Flags
	header[9] = 12
	engine.PutUint16(header[10:12], b.BlockID)

	out := make([]byte, 0, len(header)+len(nonce)+len(sealed))
	out = append(out, header...)
	out = append(out, nonce...)
	out = append(out, sealed...)

	return out, nil
}

// SealAll seals every block in blocks and concatenates them in order,
// producing a complete capture-file buffer.
func (e *Encoder) SealAll(blocks []Block) ([]byte, error) {
	var buf bytes.Buffer

	for _, b := range blocks {
		sealed, err := e.Seal(b)
		if err != nil {
			return nil, err
		}

		buf.Write(sealed)
	}

	return buf.Bytes(), nil
}

func compress(plaintext []byte, alg format.CompressionAlgorithm) ([]byte, error) {
	switch alg {
	case format.CompressionNone:
		return plaintext, nil

	case format.CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(plaintext); err != nil {
			return nil, fmt.Errorf("testencoder: lz4 write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("testencoder: lz4 close: %w", err)
		}

		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("testencoder: unsupported compression algorithm %s for encoding", alg)
	}
}
