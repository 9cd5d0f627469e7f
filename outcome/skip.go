// Package outcome defines the per-block outcome vocabulary shared by every
// pipeline stage: a block either reaches the aggregator (Ok) or is skipped at
// a named stage for a named reason (Skip). Skip implements error so stages
// can return it directly; the driver inspects it to build a ledger entry
// instead of aborting the run.
package outcome

import (
	"fmt"

	"github.com/shootbywire/sbwdecode/format"
)

// Skip records that a block did not reach the aggregator, and why. Err, when
// set, is the sentinel from errs that Reason names in string form; callers
// that hold a Skip as an error can still errors.Is against it.
type Skip struct {
	Stage  format.Stage
	Reason string
	Err    error
}

func (s Skip) Error() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: %s: %v", s.Stage, s.Reason, s.Err)
	}

	return fmt.Sprintf("%s: %s", s.Stage, s.Reason)
}

// Unwrap exposes Err so errors.Is/errors.As reach the wrapped sentinel.
func (s Skip) Unwrap() error {
	return s.Err
}

// NewSkip builds a Skip for the given stage and reason, with no wrapped sentinel.
func NewSkip(stage format.Stage, reason string) Skip {
	return Skip{Stage: stage, Reason: reason}
}

// NewSkipErr builds a Skip that wraps the sentinel error matching reason, so
// callers can errors.Is against a stable errs value instead of the reason string.
func NewSkipErr(stage format.Stage, reason string, err error) Skip {
	return Skip{Stage: stage, Reason: reason, Err: err}
}

// AsSkip reports whether err is itself a Skip, returning it if so. A Skip
// wrapped inside another error is not unwrapped and reports false.
func AsSkip(err error) (Skip, bool) {
	var s Skip
	if err == nil {
		return s, false
	}

	if sk, ok := err.(Skip); ok { //nolint:errorlint // Skip is never wrapped by stages, only returned directly
		return sk, true
	}

	return s, false
}
