package pipeline

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shootbywire/sbwdecode/endian"
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/frame"
	"github.com/shootbywire/sbwdecode/pipeline/testencoder"
	"github.com/shootbywire/sbwdecode/tlv"
)

var testKey = bytes.Repeat([]byte{0x11}, 32)

func init() {
	for i := range testKey {
		testKey[i] = byte(0x11 + i%0x22)
	}
}

func le32(v float32) []byte {
	b := make([]byte, 4)
	endian.GetLittleEndianEngine().PutUint32(b, math.Float32bits(v))
	return b
}

func le16u(v uint16) []byte {
	b := make([]byte, 2)
	endian.GetLittleEndianEngine().PutUint16(b, v)
	return b
}

func tlvHeader(typ uint8, length uint16) []byte {
	return append([]byte{typ}, le16u(length)...)
}

func imuPlaintext() []byte {
	payload := append(append(append(append(append(
		le32(1.0), le32(2.0)...), le32(3.0)...), le32(0.1)...), le32(0.2)...), le32(0.3)...)

	return append(tlvHeader(uint8(tlv.TypeIMU), 24), payload...)
}

func TestRunSingleIMURecord(t *testing.T) {
	plaintext := imuPlaintext()

	enc, err := testencoder.NewEncoder(testKey)
	require.NoError(t, err)

	buf, err := enc.SealAll([]testencoder.Block{
		{BlockID: 1, Flags: uint8(format.CompressionLZ4), Plaintext: plaintext},
	})
	require.NoError(t, err)

	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(buf), cfg)
	require.NoError(t, err)

	require.Len(t, result.Ledger, 1)
	require.True(t, result.Ledger[0].Outcome.Ok)
	require.Equal(t, 1, result.Ledger[0].RecordsProduced)
	require.Len(t, result.IMU, 1)
	require.InDelta(t, float32(1.0), result.IMU[0].IMU.AccelX, 0)
}

func TestRunKeyFailureStormAbortsAtThreshold(t *testing.T) {
	plaintext := imuPlaintext()

	wrongKey := make([]byte, 32)
	copy(wrongKey, testKey)
	wrongKey[0] ^= 0xFF

	encWrong, err := testencoder.NewEncoder(wrongKey)
	require.NoError(t, err)

	var blocks []testencoder.Block
	for i := uint16(1); i <= 20; i++ {
		blocks = append(blocks, testencoder.Block{BlockID: i, Flags: uint8(format.CompressionNone), Plaintext: plaintext})
	}

	buf, err := encWrong.SealAll(blocks)
	require.NoError(t, err)

	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(buf), cfg)
	require.Error(t, err)
	require.Len(t, result.Ledger, 16)

	for _, entry := range result.Ledger {
		require.False(t, entry.Outcome.Ok)
		require.Equal(t, format.StageCrypto, entry.Outcome.Stage)
	}
}

func TestRunMalformedRecordInMiddleStillOk(t *testing.T) {
	imu := imuPlaintext()
	badTemp := append(tlvHeader(uint8(tlv.TypeTemperature), 7), make([]byte, 7)...)
	ts := append(tlvHeader(uint8(tlv.TypeTimestamp), 8), make([]byte, 8)...)

	plaintext := append(append(append([]byte{}, imu...), badTemp...), ts...)

	enc, err := testencoder.NewEncoder(testKey)
	require.NoError(t, err)

	buf, err := enc.SealAll([]testencoder.Block{
		{BlockID: 9, Flags: uint8(format.CompressionNone), Plaintext: plaintext},
	})
	require.NoError(t, err)

	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(buf), cfg)
	require.NoError(t, err)

	require.Len(t, result.Ledger, 1)
	require.True(t, result.Ledger[0].Outcome.Ok)
	require.Equal(t, 3, result.Ledger[0].RecordsProduced)
	require.Len(t, result.IMU, 1)
	require.Len(t, result.Malformed, 1)
	require.Len(t, result.Timestamp, 1)
}

func TestRunEmptySourceProducesEmptyResult(t *testing.T) {
	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(nil), cfg)
	require.NoError(t, err)
	require.Empty(t, result.Ledger)
	require.Empty(t, result.IMU)
}

func TestRunContextCancelledStopsEarly(t *testing.T) {
	plaintext := imuPlaintext()

	enc, err := testencoder.NewEncoder(testKey)
	require.NoError(t, err)

	var blocks []testencoder.Block
	for i := uint16(1); i <= 5; i++ {
		blocks = append(blocks, testencoder.Block{BlockID: i, Flags: uint8(format.CompressionNone), Plaintext: plaintext})
	}

	buf, err := enc.SealAll(blocks)
	require.NoError(t, err)

	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, frame.BufferSource(buf), cfg)
	require.Error(t, err)
	require.Empty(t, result.Ledger)
}

func TestRunInputShorterThanHeaderRecordsTerminalSkip(t *testing.T) {
	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(make([]byte, 5)), cfg)
	require.NoError(t, err)

	require.Len(t, result.Ledger, 1)
	require.False(t, result.Ledger[0].Outcome.Ok)
	require.Equal(t, format.StageFrame, result.Ledger[0].Outcome.Stage)
	require.Equal(t, "truncated_header", result.Ledger[0].Outcome.Reason)
	require.Equal(t, 1, result.Summary.SkippedByStage[format.StageFrame])
	require.Equal(t, 1, result.Summary.SkippedByReason["truncated_header"])
}

func TestRunTruncatedPayloadRecordsTerminalSkip(t *testing.T) {
	enc, err := testencoder.NewEncoder(testKey)
	require.NoError(t, err)

	buf, err := enc.SealAll([]testencoder.Block{
		{BlockID: 7, Flags: uint8(format.CompressionNone), Plaintext: imuPlaintext()},
	})
	require.NoError(t, err)

	truncated := buf[:len(buf)-5] // chop the tail so the declared sealed payload can't fit

	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)

	result, err := Run(context.Background(), frame.BufferSource(truncated), cfg)
	require.NoError(t, err)

	require.Len(t, result.Ledger, 1)
	require.False(t, result.Ledger[0].Outcome.Ok)
	require.Equal(t, format.StageFrame, result.Ledger[0].Outcome.Stage)
	require.Equal(t, "truncated_payload", result.Ledger[0].Outcome.Reason)
	require.Equal(t, uint16(7), result.Ledger[0].BlockID)
	require.Equal(t, 1, result.Summary.SkippedByStage[format.StageFrame])
}

func TestNewConfigRequiresKey(t *testing.T) {
	_, err := NewConfig()
	require.Error(t, err)
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg, err := NewConfig(WithKey(testKey))
	require.NoError(t, err)
	require.Equal(t, format.CompressionUnspecified, cfg.CompressionOverride)
	require.NotNil(t, cfg.DiagnosticsSink)
}
