package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shootbywire/sbwdecode/format"
)

func TestSliceSinkCollectsInOrder(t *testing.T) {
	sink := NewSliceSink()

	sink.Emit(DiagnosticsEvent{BlockID: 1, Stage: format.StageCrypto, Severity: format.SeverityWarning, Reason: "a"})
	sink.Emit(DiagnosticsEvent{BlockID: 2, Stage: format.StageTLV, Severity: format.SeverityInfo, Reason: "b"})

	events := sink.Events()
	require.Len(t, events, 2)
	require.Equal(t, "a", events[0].Reason)
	require.Equal(t, "b", events[1].Reason)
}

func TestSliceSinkEmptyByDefault(t *testing.T) {
	sink := NewSliceSink()
	require.Empty(t, sink.Events())
}
