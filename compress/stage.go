package compress

import (
	"github.com/shootbywire/sbwdecode/errs"
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/outcome"
)

// Inflate runs the Decompressor stage for one block's plaintext-candidate
// bytes (spec §4.3). flagsLowNibble comes from the block header; override
// comes from pipeline configuration (compression.algorithm) and, when not
// format.CompressionUnspecified, takes precedence.
//
// sizeMismatch reports whether the inflated length differs from rawSize: a
// warning, not a failure — the caller proceeds with the inflated bytes as-is
// and lets the TLV scanner's own bounds checks be authoritative.
func Inflate(plaintext []byte, flagsLowNibble uint8, rawSize uint32, override format.CompressionAlgorithm) (inflated []byte, sizeMismatch bool, err error) {
	alg, ok := ResolveAlgorithm(flagsLowNibble, override)
	if !ok {
		return nil, false, outcome.NewSkipErr(format.StageDecompress, "unknown_algorithm", errs.ErrUnknownAlgorithm)
	}

	if alg == format.CompressionHeatshrink {
		return nil, false, outcome.NewSkipErr(format.StageDecompress, "unsupported_algorithm", errs.ErrUnsupportedAlgorithm)
	}

	codec, err := CreateCodec(alg)
	if err != nil {
		return nil, false, outcome.NewSkipErr(format.StageDecompress, "unknown_algorithm", errs.ErrUnknownAlgorithm)
	}

	inflated, err = codec.Decompress(plaintext)
	if err != nil {
		return nil, false, outcome.NewSkipErr(format.StageDecompress, "corrupt_stream", errs.ErrDecompressionFailed)
	}

	sizeMismatch = uint32(len(inflated)) != rawSize

	return inflated, sizeMismatch, nil
}
