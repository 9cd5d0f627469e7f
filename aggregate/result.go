package aggregate

import "github.com/shootbywire/sbwdecode/tlv"

// Result is the complete output of a run: the block ledger, the summary,
// and every per-type sequence, each in arrival order.
type Result struct {
	Ledger      BlockLedger
	Summary     Summary
	IMU         []tlv.Record
	Temperature []tlv.Record
	Health      []tlv.Record
	Session     []tlv.Record
	Timestamp   []tlv.Record
	Raw         []tlv.Record
	Malformed   []tlv.Record
}

// Result snapshots the Aggregator's current state into a Result value.
func (a *Aggregator) Result() Result {
	return Result{
		Ledger:      a.Ledger(),
		Summary:     a.Summary(),
		IMU:         a.IMU(),
		Temperature: a.Temperature(),
		Health:      a.Health(),
		Session:     a.Session(),
		Timestamp:   a.Timestamp(),
		Raw:         a.Raw(),
		Malformed:   a.Malformed(),
	}
}
