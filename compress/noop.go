package compress

// NoOpCodec is the passthrough codec for flags low nibble 0x0 (spec §4.3):
// the plaintext is the inflated buffer, unchanged.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged. The returned slice shares the input's
// underlying memory.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The returned slice shares the input's
// underlying memory.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
