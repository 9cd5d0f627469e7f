package pipeline

import (
	"github.com/shootbywire/sbwdecode/crypto"
	"github.com/shootbywire/sbwdecode/errs"
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/frame"
	"github.com/shootbywire/sbwdecode/internal/options"
)

// Config is the explicit configuration record a Run invocation needs. Build
// one with NewConfig and a list of With* options, mirroring the teacher's
// generic functional-options pattern so an external config loader can apply
// options dynamically.
type Config struct {
	Key                 []byte
	MaxBlockSize        uint32
	MaxFileSize         int64
	KeyFailureThreshold int
	CompressionOverride format.CompressionAlgorithm
	DiagnosticsSink     DiagnosticsSink
	CancelSignal        <-chan struct{}
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithKey sets the AES-256-GCM key. Required; NewConfig fails without one.
func WithKey(key []byte) Option {
	return options.NoError(func(c *Config) {
		c.Key = key
	})
}

// WithMaxBlockSize overrides the default block size limit (frame.DefaultMaxBlockSize).
func WithMaxBlockSize(n uint32) Option {
	return options.NoError(func(c *Config) {
		c.MaxBlockSize = n
	})
}

// WithMaxFileSize bounds the total byte source length Run will accept; 0 means unbounded.
func WithMaxFileSize(n int64) Option {
	return options.NoError(func(c *Config) {
		c.MaxFileSize = n
	})
}

// WithKeyFailureThreshold overrides the default consecutive-failure abort threshold.
func WithKeyFailureThreshold(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return errs.ErrConfigInvalidLimit
		}
		c.KeyFailureThreshold = n

		return nil
	})
}

// WithCompressionOverride forces every block to decompress with alg,
// ignoring its header's flags low nibble. Pass format.CompressionUnspecified
// (the default) to respect each block's own flags.
func WithCompressionOverride(alg format.CompressionAlgorithm) Option {
	return options.NoError(func(c *Config) {
		c.CompressionOverride = alg
	})
}

// WithDiagnosticsSink replaces the default SliceSink with sink.
func WithDiagnosticsSink(sink DiagnosticsSink) Option {
	return options.NoError(func(c *Config) {
		c.DiagnosticsSink = sink
	})
}

// WithCancelSignal supplies an additional cooperative-cancellation channel,
// polled between blocks alongside ctx.Done(). Closing it stops Run the same
// way cancelling the context does.
func WithCancelSignal(ch <-chan struct{}) Option {
	return options.NoError(func(c *Config) {
		c.CancelSignal = ch
	})
}

// NewConfig builds a Config from opts, applying defaults first.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		MaxBlockSize:        frame.DefaultMaxBlockSize,
		KeyFailureThreshold: crypto.DefaultKeyFailureThreshold,
		CompressionOverride: format.CompressionUnspecified,
		DiagnosticsSink:     NewSliceSink(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(cfg.Key) == 0 {
		return nil, errs.ErrConfigMissingKey
	}

	return cfg, nil
}
