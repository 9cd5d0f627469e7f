// Package sbwdecode decodes Shoot-By-Wire capture files: a sequence of
// self-describing blocks, each AES-256-GCM sealed and individually
// compressed, carrying TLV-encoded telemetry records (IMU, temperature,
// health, session, and timestamp).
//
// # Basic usage
//
// Decoding a capture file already loaded into memory:
//
//	import "github.com/shootbywire/sbwdecode"
//
//	result, err := sbwdecode.DecodeBytes(ctx, captureBytes, key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, rec := range result.IMU {
//	    fmt.Printf("block=%d accel=(%.2f,%.2f,%.2f)\n",
//	        rec.BlockID, rec.IMU.AccelX, rec.IMU.AccelY, rec.IMU.AccelZ)
//	}
//
//	for _, entry := range result.Ledger {
//	    fmt.Printf("block=%d outcome=%s records=%d\n",
//	        entry.BlockID, entry.Outcome, entry.RecordsProduced)
//	}
//
// # Package structure
//
// This file provides convenient top-level wrappers around the pipeline
// package, covering the common case of decoding a whole capture with a
// single key and default limits. For per-stage control (custom byte
// sources, diagnostics sinks, compression overrides, key-failure
// thresholds) use the pipeline, frame, crypto, compress, tlv, and
// aggregate packages directly.
package sbwdecode

import (
	"context"

	"github.com/shootbywire/sbwdecode/aggregate"
	"github.com/shootbywire/sbwdecode/frame"
	"github.com/shootbywire/sbwdecode/pipeline"
)

// Decode runs the full decode pipeline over src using key, applying any
// additional pipeline options after WithKey(key). It is a thin convenience
// wrapper around pipeline.NewConfig and pipeline.Run.
func Decode(ctx context.Context, src pipeline.ByteSource, key []byte, opts ...pipeline.Option) (aggregate.Result, error) {
	allOpts := append([]pipeline.Option{pipeline.WithKey(key)}, opts...)

	cfg, err := pipeline.NewConfig(allOpts...)
	if err != nil {
		return aggregate.Result{}, err
	}

	return pipeline.Run(ctx, src, cfg)
}

// DecodeBytes is Decode for a capture already held in memory.
func DecodeBytes(ctx context.Context, data []byte, key []byte, opts ...pipeline.Option) (aggregate.Result, error) {
	return Decode(ctx, frame.BufferSource(data), key, opts...)
}
