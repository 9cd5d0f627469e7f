package pipeline

import "github.com/shootbywire/sbwdecode/format"

// DiagnosticsEvent is one structured event emitted during a run: which
// block it concerns (0 if not block-specific), which stage raised it, its
// severity, and a short reason string matching the ledger's skip reasons.
type DiagnosticsEvent struct {
	BlockID  uint16
	Stage    format.Stage
	Severity format.Severity
	Reason   string
}

// DiagnosticsSink receives diagnostics events as Run produces them. There is
// no global logger (spec §9's explicit move away from per-module loggers);
// wiring a sink to e.g. log/slog is left to the caller.
type DiagnosticsSink interface {
	Emit(DiagnosticsEvent)
}

// SliceSink collects every event it receives in memory, in arrival order.
// It is the only built-in DiagnosticsSink, intended for tests and simple CLI use.
type SliceSink struct {
	events []DiagnosticsEvent
}

// NewSliceSink creates an empty SliceSink.
func NewSliceSink() *SliceSink {
	return &SliceSink{}
}

// Emit appends e to the collected events.
func (s *SliceSink) Emit(e DiagnosticsEvent) {
	s.events = append(s.events, e)
}

// Events returns every event collected so far, in arrival order.
func (s *SliceSink) Events() []DiagnosticsEvent {
	return s.events
}
