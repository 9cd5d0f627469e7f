package aggregate

import (
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/tlv"
)

// Summary is the aggregate-level view of a completed run: totals per
// outcome, totals per record kind, first/last timestamp context observed,
// and the two informational counters that never affect pass/fail
// (reserved flag bits, repeated block_id values).
type Summary struct {
	TotalBlocks int
	OkBlocks    int

	// SkippedByStage counts blocks whose outcome was a skip at the given stage.
	SkippedByStage map[format.Stage]int
	// SkippedByReason counts blocks whose outcome was a skip for the given reason.
	SkippedByReason map[string]int

	// RecordsByKind counts decoded records by kind, across every block
	// regardless of that block's overall outcome.
	RecordsByKind map[tlv.Kind]int

	FirstTimestampMic *int64
	LastTimestampMic  *int64

	// ReservedFlagsSet counts blocks whose header had any reserved flag bit
	// set (spec §9 Open Question): surfaced, never rejected.
	ReservedFlagsSet int

	// BlockIDRepeated counts blocks whose block_id had already been seen
	// earlier in the run; BlockIDDistinct is the number of distinct ids seen.
	BlockIDRepeated int
	BlockIDDistinct int
}
