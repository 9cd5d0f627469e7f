package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shootbywire/sbwdecode/errs"
)

func buildBlock(rawSize, compressedSize uint32, flags, nonceSize uint8, blockID uint16, sealed []byte) []byte {
	out := append([]byte{}, buildHeaderBytes(rawSize, compressedSize, flags, nonceSize, blockID)...)
	return append(out, sealed...)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(BufferSource(nil), 0)

	var frames []Frame
	for f := range r.Frames() {
		frames = append(frames, f)
	}

	require.NoError(t, r.Err())
	require.Nil(t, r.Terminal())
	require.Empty(t, frames)
}

func TestReaderShorterThanHeader(t *testing.T) {
	r := NewReader(BufferSource(make([]byte, 11)), 0)

	for range r.Frames() {
		t.Fatal("expected no frames")
	}

	require.NoError(t, r.Err())
	require.NotNil(t, r.Terminal())
	require.Equal(t, "truncated_header", r.Terminal().Reason)
	require.ErrorIs(t, r.Terminal(), errs.ErrTruncatedHeader)
}

func TestReaderSingleWellFormedFrame(t *testing.T) {
	sealed := make([]byte, 12+8+TagSize) // nonce(12) + ciphertext(8) + tag(16)
	for i := range sealed {
		sealed[i] = byte(i)
	}
	data := buildBlock(8, 8, 0x00, 12, 1, sealed)

	r := NewReader(BufferSource(data), 0)

	var frames []Frame
	for f := range r.Frames() {
		frames = append(frames, f)
	}

	require.NoError(t, r.Err())
	require.Nil(t, r.Terminal())
	require.Len(t, frames, 1)
	require.Equal(t, uint16(1), frames[0].Header.BlockID)
	require.Equal(t, sealed, frames[0].Sealed)
	require.Equal(t, int64(0), frames[0].Offset)
}

func TestReaderTruncatedPayload(t *testing.T) {
	header := buildHeaderBytes(1024, 1024, 0x00, 12, 1)
	data := append(header, make([]byte, 500)...) // far short of 12+1024+16 needed

	r := NewReader(BufferSource(data), 0)
	for range r.Frames() {
		t.Fatal("expected no frames")
	}

	require.NoError(t, r.Err())
	require.NotNil(t, r.Terminal())
	require.Equal(t, "truncated_payload", r.Terminal().Reason)
	require.Equal(t, uint16(1), r.Terminal().BlockID)
	require.ErrorIs(t, r.Terminal(), errs.ErrTruncatedPayload)
}

func TestReaderZeroNonceSizeIsTerminal(t *testing.T) {
	data := buildHeaderBytes(0, 0, 0x00, 0, 1)

	r := NewReader(BufferSource(data), 0)
	for range r.Frames() {
		t.Fatal("expected no frames")
	}

	require.NotNil(t, r.Terminal())
	require.Equal(t, "truncated_header", r.Terminal().Reason)
	require.ErrorIs(t, r.Terminal(), errs.ErrZeroNonceSize)
}

func TestReaderOversizedCompressedSize(t *testing.T) {
	data := buildHeaderBytes(0, 1000, 0x00, 12, 1)

	r := NewReader(BufferSource(data), 100) // maxBlockSize smaller than compressed_size
	for range r.Frames() {
		t.Fatal("expected no frames")
	}

	require.NotNil(t, r.Terminal())
	require.ErrorIs(t, r.Terminal(), errs.ErrBlockTooLarge)
}

func TestReaderMultipleBlocksThenTruncation(t *testing.T) {
	sealed1 := make([]byte, 12+4+TagSize)
	sealed2 := make([]byte, 12+4+TagSize)
	block1 := buildBlock(4, 4, 0x00, 12, 1, sealed1)
	block2 := buildBlock(4, 4, 0x00, 12, 2, sealed2)

	data := append(append([]byte{}, block1...), block2...)
	data = append(data, make([]byte, 5)...) // trailing partial fragment

	r := NewReader(BufferSource(data), 0)

	var ids []uint16
	for f := range r.Frames() {
		ids = append(ids, f.Header.BlockID)
	}

	require.NoError(t, r.Err())
	require.Equal(t, []uint16{1, 2}, ids)
	require.NotNil(t, r.Terminal())
	require.Equal(t, "truncated_header", r.Terminal().Reason)
}

func TestReaderBoundedConsumption(t *testing.T) {
	sealed := make([]byte, 12+4+TagSize)
	block := buildBlock(4, 4, 0x00, 12, 1, sealed)

	r := NewReader(BufferSource(block), 0)
	for range r.Frames() {
	}

	require.Equal(t, int64(len(block)), r.BytesConsumed())
}
