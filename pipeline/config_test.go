package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shootbywire/sbwdecode/errs"
	"github.com/shootbywire/sbwdecode/format"
)

func TestNewConfigMissingKey(t *testing.T) {
	_, err := NewConfig(WithMaxBlockSize(1024))
	require.ErrorIs(t, err, errs.ErrConfigMissingKey)
}

func TestWithKeyFailureThresholdRejectsNonPositive(t *testing.T) {
	_, err := NewConfig(WithKey(testKey), WithKeyFailureThreshold(0))
	require.ErrorIs(t, err, errs.ErrConfigInvalidLimit)
}

func TestWithCompressionOverride(t *testing.T) {
	cfg, err := NewConfig(WithKey(testKey), WithCompressionOverride(format.CompressionNone))
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, cfg.CompressionOverride)
}

func TestWithMaxFileSize(t *testing.T) {
	cfg, err := NewConfig(WithKey(testKey), WithMaxFileSize(4096))
	require.NoError(t, err)
	require.Equal(t, int64(4096), cfg.MaxFileSize)
}

func TestWithDiagnosticsSinkOverride(t *testing.T) {
	custom := NewSliceSink()
	cfg, err := NewConfig(WithKey(testKey), WithDiagnosticsSink(custom))
	require.NoError(t, err)
	require.Same(t, custom, cfg.DiagnosticsSink)
}
