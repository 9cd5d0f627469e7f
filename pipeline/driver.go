package pipeline

import (
	"context"
	"fmt"

	"github.com/shootbywire/sbwdecode/aggregate"
	"github.com/shootbywire/sbwdecode/compress"
	"github.com/shootbywire/sbwdecode/crypto"
	"github.com/shootbywire/sbwdecode/errs"
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/frame"
	"github.com/shootbywire/sbwdecode/internal/hash"
	"github.com/shootbywire/sbwdecode/internal/pool"
	"github.com/shootbywire/sbwdecode/outcome"
	"github.com/shootbywire/sbwdecode/tlv"
)

// ByteSource is the external byte-addressable input Run consumes: the same
// contract the Frame Reader pulls from (spec §6).
type ByteSource = frame.ByteSource

// Run decodes one capture file's worth of blocks from src under cfg and
// returns the aggregated result. It never returns a non-nil error for an
// individual block's failure — those become ledger entries — except for
// the three fatal conditions the spec names: key_likely_wrong after
// repeated authentication failures, an I/O error reading the byte source,
// and a byte source exceeding cfg.MaxFileSize.
func Run(ctx context.Context, src ByteSource, cfg *Config) (aggregate.Result, error) {
	if cfg.MaxFileSize > 0 && src.Len() > cfg.MaxFileSize {
		return aggregate.Result{}, fmt.Errorf("pipeline: %w: source is %d bytes, limit is %d", errs.ErrConfigInvalidLimit, src.Len(), cfg.MaxFileSize)
	}

	unsealer, err := crypto.NewUnsealer(cfg.Key, cfg.KeyFailureThreshold)
	if err != nil {
		return aggregate.Result{}, fmt.Errorf("pipeline: %w", err)
	}
	defer unsealer.Close()

	reader := frame.NewReader(src, cfg.MaxBlockSize)
	scanner := tlv.NewScanner()
	agg := aggregate.New()

	// staging reused across blocks for the unsealed plaintext, amortizing
	// allocation the way internal/pool's ByteBuffer is meant to (grows once,
	// then gets reset rather than reallocated, per block).
	staging := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(staging)

	for f := range reader.Frames() {
		if err := checkCancelled(ctx, cfg); err != nil {
			return agg.Result(), err
		}

		bytesConsumed := int64(frame.HeaderSize + f.Header.SealedPayloadSize())
		reserved := f.Header.ReservedBitsSet()

		staging.Reset()
		plaintext, err := unsealer.UnsealInto(f, staging.Bytes())
		if err == nil {
			staging.B = plaintext
		}
		if err != nil {
			skip, _ := outcome.AsSkip(err)
			cfg.DiagnosticsSink.Emit(skipEvent(f.Header.BlockID, skip))
			agg.AcceptSkip(f.Header.BlockID, bytesConsumed, reserved, skip)

			if unsealer.ShouldAbort() {
				return agg.Result(), fmt.Errorf("pipeline: %w", unsealer.AbortError())
			}

			continue
		}

		contentHash := hash.ID(string(f.Sealed))

		inflated, sizeMismatch, err := compress.Inflate(plaintext, f.Header.CompressionNibble(), f.Header.RawSize, cfg.CompressionOverride)
		if err != nil {
			skip, _ := outcome.AsSkip(err)
			cfg.DiagnosticsSink.Emit(skipEvent(f.Header.BlockID, skip))
			agg.AcceptSkip(f.Header.BlockID, bytesConsumed, reserved, skip)

			continue
		}

		if sizeMismatch {
			cfg.DiagnosticsSink.Emit(DiagnosticsEvent{
				BlockID:  f.Header.BlockID,
				Stage:    format.StageDecompress,
				Severity: format.SeverityWarning,
				Reason:   "raw_size_mismatch",
			})
		}

		res := scanner.Scan(inflated, f.Header.BlockID)
		if res.Tail != nil {
			cfg.DiagnosticsSink.Emit(DiagnosticsEvent{
				BlockID:  f.Header.BlockID,
				Stage:    format.StageTLV,
				Severity: format.SeverityWarning,
				Reason:   res.Tail.Reason,
			})
		}

		agg.AcceptScan(f.Header.BlockID, bytesConsumed, contentHash, reserved, res)
	}

	if reader.Err() != nil {
		return agg.Result(), fmt.Errorf("pipeline: %w: %v", errs.ErrSourceRead, reader.Err())
	}

	if t := reader.Terminal(); t != nil {
		cfg.DiagnosticsSink.Emit(DiagnosticsEvent{
			BlockID:  t.BlockID,
			Stage:    format.StageFrame,
			Severity: format.SeverityInfo,
			Reason:   t.Reason,
		})

		// The trailing fragment was inspected but never yielded as a frame,
		// so it has no ledger entry yet; record it so the terminal skip is
		// reachable from Result, not only from the diagnostics sink.
		trailing := src.Len() - reader.BytesConsumed()
		agg.AcceptSkip(t.BlockID, trailing, false, outcome.NewSkipErr(format.StageFrame, t.Reason, t.Err))
	}

	return agg.Result(), nil
}

func checkCancelled(ctx context.Context, cfg *Config) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("pipeline: %w", ctx.Err())
	default:
	}

	if cfg.CancelSignal != nil {
		select {
		case <-cfg.CancelSignal:
			return fmt.Errorf("pipeline: run cancelled")
		default:
		}
	}

	return nil
}

func skipEvent(blockID uint16, skip outcome.Skip) DiagnosticsEvent {
	return DiagnosticsEvent{
		BlockID:  blockID,
		Stage:    skip.Stage,
		Severity: format.SeverityWarning,
		Reason:   skip.Reason,
	}
}
