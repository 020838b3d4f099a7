// internal/status/status_test.go
package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/zone-navigator/internal/zone"
)

func TestEncode_Lines(t *testing.T) {
	cases := []struct {
		event Event
		want  string
	}{
		{Event{Kind: Start, Scenario: zone.Contaminated}, "STATUS:START scenario=CONTAMINATED"},
		{Event{Kind: TargetColor, Color: zone.Red}, "STATUS:TARGET_COLOR=RED"},
		{Event{Kind: Reached, Color: zone.Red}, "STATUS:RED_REACHED"},
		{Event{Kind: Zone, Scenario: zone.Contaminated}, "STATUS:ZONE=CONTAMINATED"},
		{Event{Kind: WrongWay, Color: zone.Green}, "STATUS:WRONG_WAY_FOR_GREEN"},
		{Event{Kind: TurnAround}, "STATUS:TURN_AROUND"},
		{Event{Kind: AbortObstacle, DistanceMM: 40}, "STATUS:ABORT_OBSTACLE distance_mm=40"},
		{Event{Kind: AbortTimeout, Elapsed: 30 * time.Second}, "STATUS:ABORT_TIMEOUT elapsed_ms=30000"},
		{Event{Kind: Done}, "STATUS:DONE"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Encode(tc.event))
	}
}

func TestParse_RoundTrip(t *testing.T) {
	events := []Event{
		{Kind: Start, Scenario: zone.Inspection},
		{Kind: TargetColor, Color: zone.Yellow},
		{Kind: Reached, Color: zone.Yellow},
		{Kind: Zone, Scenario: zone.Inspection},
		{Kind: WrongWay, Color: zone.Red},
		{Kind: TurnAround},
		{Kind: AbortObstacle, DistanceMM: 149},
		{Kind: AbortTimeout, Elapsed: 45 * time.Second},
		{Kind: Done},
	}

	for _, e := range events {
		got, ok := Parse(Encode(e))
		require.True(t, ok, "line %q", Encode(e))
		require.Equal(t, e, got)
	}
}

func TestParse_IgnoresUnknownLines(t *testing.T) {
	for _, line := range []string{
		"",
		"Starting contamination sorter logic...",
		"DEBUG Config: RED=5, GREEN=11",
		"STATUS:",
		"STATUS:SOMETHING_NEW",                // unknown tag, forward-compatible
		"STATUS:PURPLE_REACHED",               // not a stripe color
		"STATUS:ABORT_OBSTACLE distance_mm=x", // malformed value
		"STATUS:ZONE=UNHEARD_OF",
	} {
		_, ok := Parse(line)
		require.False(t, ok, "line %q", line)
	}
}

func TestParse_TrailingWhitespace(t *testing.T) {
	e, ok := Parse("STATUS:DONE\r")
	require.True(t, ok)
	require.Equal(t, Done, e.Kind)
}

func TestIsTerminal(t *testing.T) {
	require.True(t, Event{Kind: Done}.IsTerminal())
	require.True(t, Event{Kind: AbortObstacle}.IsTerminal())
	require.True(t, Event{Kind: AbortTimeout}.IsTerminal())
	require.False(t, Event{Kind: Reached}.IsTerminal())
	require.False(t, Event{Kind: Start}.IsTerminal())
}
