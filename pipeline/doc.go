// Package pipeline wires the Frame Reader, Crypto Unsealer, Decompressor,
// TLV Scanner, and Record Aggregator into a single driver loop: Run reads
// one capture file's worth of blocks from a ByteSource and returns the
// decoded per-type sequences plus the block ledger.
package pipeline
