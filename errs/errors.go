// Package errs defines the sentinel errors returned by the decode pipeline.
//
// Callers should use errors.Is against these values; stage-specific context
// (block id, reason string) is attached by the caller via fmt.Errorf("...: %w").
package errs

import "errors"

var (
	// ErrInvalidHeaderSize is returned when a block header is not exactly 12 bytes.
	ErrInvalidHeaderSize = errors.New("sbwdecode: invalid block header size")
	// ErrZeroNonceSize is returned when a header declares a zero-length nonce.
	ErrZeroNonceSize = errors.New("sbwdecode: nonce size is zero")
	// ErrBlockTooLarge is returned when a header's compressed_size exceeds the configured limit.
	ErrBlockTooLarge = errors.New("sbwdecode: compressed_size exceeds max block size")
	// ErrTruncatedHeader is returned when fewer than 12 bytes remain for a header.
	ErrTruncatedHeader = errors.New("sbwdecode: truncated block header")
	// ErrTruncatedPayload is returned when the sealed payload is shorter than the header declares.
	ErrTruncatedPayload = errors.New("sbwdecode: truncated sealed payload")

	// ErrKeyLengthInvalid is returned when a configured key is not exactly 32 bytes.
	ErrKeyLengthInvalid = errors.New("sbwdecode: key must be exactly 32 bytes")
	// ErrKeyWeak is returned when a configured key is all-zero or a constant-byte pattern.
	ErrKeyWeak = errors.New("sbwdecode: key must not be all-zero or a constant-byte pattern")
	// ErrNonceLengthInvalid is returned when a header's nonce_size is not 12 for EN-1.0.
	ErrNonceLengthInvalid = errors.New("sbwdecode: nonce_size must be 12 for EN-1.0")
	// ErrAuthenticationFailed is returned when AES-GCM tag verification fails.
	ErrAuthenticationFailed = errors.New("sbwdecode: wrong key or tampered payload")
	// ErrKeyLikelyWrong is a fatal, run-aborting error raised after repeated tag failures.
	ErrKeyLikelyWrong = errors.New("sbwdecode: key likely wrong, aborting after repeated authentication failures")

	// ErrUnsupportedAlgorithm is returned for a recognized-but-unimplemented compression algorithm (heatshrink).
	ErrUnsupportedAlgorithm = errors.New("sbwdecode: unsupported compression algorithm")
	// ErrUnknownAlgorithm is returned for a compression algorithm nibble with no known meaning.
	ErrUnknownAlgorithm = errors.New("sbwdecode: unknown compression algorithm")
	// ErrDecompressionFailed is returned when the compressed stream is corrupt.
	ErrDecompressionFailed = errors.New("sbwdecode: decompression failed")

	// ErrLengthOverrun is returned when a TLV record's declared length exceeds the remaining buffer.
	ErrLengthOverrun = errors.New("sbwdecode: tlv record length overruns block")
	// ErrTruncatedTLVHeader is returned when fewer than 3 bytes remain for a TLV type+length.
	ErrTruncatedTLVHeader = errors.New("sbwdecode: truncated tlv record header")

	// ErrConfigMissingKey is a fatal configuration error: no crypto key was supplied.
	ErrConfigMissingKey = errors.New("sbwdecode: configuration is missing crypto.key")
	// ErrConfigInvalidLimit is a fatal configuration error: a configured limit is out of range.
	ErrConfigInvalidLimit = errors.New("sbwdecode: configuration limit out of range")

	// ErrSourceRead is a fatal error wrapping an I/O failure reading the byte source.
	ErrSourceRead = errors.New("sbwdecode: byte source read failed")
)
