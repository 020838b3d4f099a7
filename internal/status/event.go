// internal/status/event.go

// Package status models the navigator's progress narration as typed events
// and serializes them to the one-event-per-line text protocol consumed by
// the bridge. The state machine stays protocol-agnostic: it emits Events,
// and only the outermost edge turns them into lines.
package status

import (
	"time"

	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Kind enumerates the event vocabulary.
type Kind int

const (
	// Start opens a run and echoes the scenario.
	Start Kind = iota
	// TargetColor declares the resolved target once seeking begins.
	TargetColor
	// Reached marks the confirmed classification match to target.
	Reached
	// Zone echoes the scenario being executed, after arrival.
	Zone
	// WrongWay marks a wrong-direction correction, tagged with the target.
	WrongWay
	// TurnAround narrates the correction maneuver.
	TurnAround
	// AbortObstacle is the terminal failure on obstacle proximity.
	AbortObstacle
	// AbortTimeout is the terminal failure on run-budget exhaustion.
	AbortTimeout
	// Done is the terminal success marker.
	Done
)

// Event is one immutable record in the navigator's output stream.
// Created at each significant transition, serialized immediately,
// never retracted.
type Event struct {
	Kind Kind
	At   time.Time

	// Exactly the fields the Kind needs are set; the rest are zero.
	Color      zone.Color    // TargetColor, Reached, WrongWay
	Scenario   zone.Scenario // Start, Zone
	DistanceMM int           // AbortObstacle
	Elapsed    time.Duration // AbortTimeout
}

// IsTerminal reports whether e ends the run (success or abort).
func (e Event) IsTerminal() bool {
	switch e.Kind {
	case Done, AbortObstacle, AbortTimeout:
		return true
	default:
		return false
	}
}
