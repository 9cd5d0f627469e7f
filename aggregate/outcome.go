package aggregate

import (
	"fmt"

	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/outcome"
)

// Outcome is a block's final disposition: either Ok (its TLV scan ran to
// completion with no tail skip) or Skipped at a named stage for a named
// reason — an earlier-stage skip, or a TLV tail skip that still keeps the
// records decoded before it (spec §4: "Ok{records_produced: N},
// Skipped{stage, reason}").
type Outcome struct {
	Ok     bool
	Stage  format.Stage
	Reason string
}

// OkOutcome is the outcome for a block whose TLV scan ran to completion
// with no tail skip.
func OkOutcome() Outcome {
	return Outcome{Ok: true}
}

// TailOutcome is the outcome for a block whose TLV scan stopped early on a
// tail skip (truncated header or length overrun). The block is not
// considered Ok, but any records decoded before the tail skip are still
// counted in RecordsProduced and appended to the per-type sequences.
func TailOutcome(reason string) Outcome {
	return Outcome{Stage: format.StageTLV, Reason: reason}
}

// SkipOutcome is the outcome for a block that failed at an earlier stage
// (frame, crypto, decompress) and never reached the TLV scanner.
func SkipOutcome(s outcome.Skip) Outcome {
	return Outcome{Stage: s.Stage, Reason: s.Reason}
}

func (o Outcome) String() string {
	if o.Ok {
		return "ok"
	}

	return fmt.Sprintf("skipped{%s, %s}", o.Stage, o.Reason)
}
