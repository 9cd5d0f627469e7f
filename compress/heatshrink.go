package compress

import "github.com/shootbywire/sbwdecode/errs"

// HeatshrinkCodec represents flags low nibble 0x2. Heatshrink is declared in
// the source firmware documentation but its window/lookahead parameters are
// not specified anywhere in that documentation; per spec §9 this module
// treats it as explicitly unsupported rather than guessing at parameters.
// A future profile that pins those parameters can replace this stub.
type HeatshrinkCodec struct{}

var _ Codec = (*HeatshrinkCodec)(nil)

// NewHeatshrinkCodec creates the unsupported heatshrink stub codec.
func NewHeatshrinkCodec() HeatshrinkCodec {
	return HeatshrinkCodec{}
}

func (c HeatshrinkCodec) Compress(data []byte) ([]byte, error) {
	return nil, errs.ErrUnsupportedAlgorithm
}

func (c HeatshrinkCodec) Decompress(data []byte) ([]byte, error) {
	return nil, errs.ErrUnsupportedAlgorithm
}
