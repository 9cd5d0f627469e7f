// Package compress implements the Decompressor stage of the decode pipeline:
// inflating a block's authenticated plaintext according to the algorithm
// selected by its flags low nibble (or a configuration override).
//
// # Supported algorithms
//
//   - None (0x0): passthrough, NoOpCodec.
//   - LZ4 (0x1): LZ4 frame format via github.com/pierrec/lz4/v4's streaming
//     Reader/Writer, LZ4Codec.
//   - Heatshrink (0x2): declared by the source firmware but not implemented;
//     HeatshrinkCodec always fails with errs.ErrUnsupportedAlgorithm (spec
//     Non-goal).
//
// Any other flags nibble value is an unknown_algorithm skip.
//
// Inflate is the entry point the driver calls per block; it resolves the
// algorithm, runs the codec, and reports a size-mismatch warning (rawSize
// disagreeing with the inflated length) without treating it as a failure —
// the TLV scanner's own bounds checks are authoritative for record safety.
package compress
