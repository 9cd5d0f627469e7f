package aggregate

import (
	"iter"

	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/internal/collision"
	"github.com/shootbywire/sbwdecode/outcome"
	"github.com/shootbywire/sbwdecode/tlv"
)

// Aggregator is the Record Aggregator (spec §4.5): it receives the outcome
// of every block the driver processes, in arrival order, and builds the
// per-type ordered sequences, the block ledger, and the run summary. It
// holds no cross-block invariants other than arrival order and is not safe
// for concurrent use.
type Aggregator struct {
	ledger    BlockLedger
	byKind    map[tlv.Kind][]tlv.Record
	summary   Summary
	collision *collision.Tracker
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		byKind: make(map[tlv.Kind][]tlv.Record),
		summary: Summary{
			SkippedByStage:  make(map[format.Stage]int),
			SkippedByReason: make(map[string]int),
			RecordsByKind:   make(map[tlv.Kind]int),
		},
		collision: collision.NewTracker(),
	}
}

// AcceptScan records a block that reached the TLV scanner. res.Tail, if
// non-nil, makes the block's outcome a tail skip, but any records decoded
// before the tail skip are still appended to the per-type sequences and
// counted in RecordsProduced — the locality invariant that partial
// progress within a block is never discarded (spec §4.4).
func (a *Aggregator) AcceptScan(blockID uint16, bytesConsumed int64, contentHash uint64, reservedFlagsSet bool, res tlv.ScanResult) {
	for _, rec := range res.Records {
		a.byKind[rec.Kind] = append(a.byKind[rec.Kind], rec)
		a.summary.RecordsByKind[rec.Kind]++

		if rec.Kind == tlv.KindTimestamp {
			a.observeTimestamp(int64(rec.Timestamp.Microseconds)) //nolint:gosec // wire value
		}
	}

	var o Outcome
	if res.Tail != nil {
		o = TailOutcome(res.Tail.Reason)
	} else {
		o = OkOutcome()
	}

	a.record(blockID, bytesConsumed, contentHash, reservedFlagsSet, len(res.Records), o)
}

// AcceptSkip records a block that failed before reaching the TLV scanner
// (frame, crypto, or decompress stage). No records are produced.
func (a *Aggregator) AcceptSkip(blockID uint16, bytesConsumed int64, reservedFlagsSet bool, skip outcome.Skip) {
	a.record(blockID, bytesConsumed, 0, reservedFlagsSet, 0, SkipOutcome(skip))
}

func (a *Aggregator) record(blockID uint16, bytesConsumed int64, contentHash uint64, reservedFlagsSet bool, recordsProduced int, o Outcome) {
	a.ledger = append(a.ledger, LedgerEntry{
		BlockID:         blockID,
		Outcome:         o,
		RecordsProduced: recordsProduced,
		BytesConsumed:   bytesConsumed,
		ContentHash:     contentHash,
	})

	a.summary.TotalBlocks++
	if o.Ok {
		a.summary.OkBlocks++
	} else {
		a.summary.SkippedByStage[o.Stage]++
		a.summary.SkippedByReason[o.Reason]++
	}

	if reservedFlagsSet {
		a.summary.ReservedFlagsSet++
	}

	if a.collision.Observe(blockID) {
		a.summary.BlockIDRepeated++
	}
	a.summary.BlockIDDistinct = a.collision.Distinct()
}

func (a *Aggregator) observeTimestamp(mic int64) {
	if a.summary.FirstTimestampMic == nil {
		a.summary.FirstTimestampMic = &mic
	}

	last := mic
	a.summary.LastTimestampMic = &last
}

// Ledger returns the ordered block ledger accumulated so far.
func (a *Aggregator) Ledger() BlockLedger {
	return a.ledger
}

// Summary returns the run summary accumulated so far.
func (a *Aggregator) Summary() Summary {
	return a.summary
}

// IMU returns the decoded IMU records in arrival order.
func (a *Aggregator) IMU() []tlv.Record { return a.byKind[tlv.KindIMU] }

// Temperature returns the decoded Temperature records in arrival order.
func (a *Aggregator) Temperature() []tlv.Record { return a.byKind[tlv.KindTemperature] }

// Health returns the decoded Health records in arrival order.
func (a *Aggregator) Health() []tlv.Record { return a.byKind[tlv.KindHealth] }

// Session returns the decoded Session records in arrival order.
func (a *Aggregator) Session() []tlv.Record { return a.byKind[tlv.KindSession] }

// Timestamp returns the decoded Timestamp records in arrival order.
func (a *Aggregator) Timestamp() []tlv.Record { return a.byKind[tlv.KindTimestamp] }

// Raw returns the unrecognized-type records in arrival order.
func (a *Aggregator) Raw() []tlv.Record { return a.byKind[tlv.KindRaw] }

// Malformed returns the known-type-bad-length records in arrival order.
func (a *Aggregator) Malformed() []tlv.Record { return a.byKind[tlv.KindMalformed] }

// All returns an iter.Seq walking every decoded record of the given kind,
// in arrival order, without allocating a new slice for the caller.
func (a *Aggregator) All(kind tlv.Kind) iter.Seq[tlv.Record] {
	records := a.byKind[kind]

	return func(yield func(tlv.Record) bool) {
		for _, rec := range records {
			if !yield(rec) {
				return
			}
		}
	}
}
