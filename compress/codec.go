package compress

import (
	"fmt"

	"github.com/shootbywire/sbwdecode/format"
)

// Compressor compresses a buffer. Production decode never calls this; it
// exists so this package's tests can round-trip each codec. The reference
// encoder in pipeline/testencoder does its own compression and does not use it.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a buffer previously compressed by the matching
// Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one decompression operation, useful for
// diagnostics and for the size-mismatch warning in spec §4.3.
type CompressionStats struct {
	Algorithm      format.CompressionAlgorithm
	CompressedSize int64
	InflatedSize   int64
}

// ResolveAlgorithm determines which decompression algorithm applies to a
// block: an explicit config override always wins over the header's flags
// low nibble (spec §6, compression.algorithm). ok is false when the nibble
// (and no override) maps to no known algorithm.
func ResolveAlgorithm(flagsLowNibble uint8, override format.CompressionAlgorithm) (alg format.CompressionAlgorithm, ok bool) {
	if override != format.CompressionUnspecified {
		return override, true
	}

	switch format.CompressionAlgorithm(flagsLowNibble) {
	case format.CompressionNone, format.CompressionLZ4, format.CompressionHeatshrink:
		return format.CompressionAlgorithm(flagsLowNibble), true
	default:
		return 0, false
	}
}

// CreateCodec is a factory function that creates a Codec for the given algorithm.
func CreateCodec(alg format.CompressionAlgorithm) (Codec, error) {
	switch alg {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionHeatshrink:
		return NewHeatshrinkCodec(), nil
	default:
		return nil, fmt.Errorf("compress: unrecognized algorithm %s", alg)
	}
}
