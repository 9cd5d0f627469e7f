// Package aggregate implements the Record Aggregator: it collects the
// records a tlv.Scanner produces across a run into per-type ordered
// sequences, and tracks a per-block ledger plus summary statistics of how
// the run went (successes, skips by stage/reason, reserved-bit warnings,
// block_id repetition).
package aggregate
