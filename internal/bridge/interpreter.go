// internal/bridge/interpreter.go
package bridge

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tamzrod/zone-navigator/internal/status"
)

// Outcome is the interpreter's verdict over one status stream.
type Outcome struct {
	Phase         Phase
	Message       string
	BoardPosition string
}

// Fixed per-phase messages. The human-readable text is part of the
// external contract; case systems key display logic on it.
const (
	msgCompleted  = "Target Zone Reached"
	msgStreamEnd  = "status stream ended without a terminal marker"
	msgStreamFail = "status stream failed"
)

// Interpret consumes status lines in emission order until the first
// terminal marker or end of stream. Lines that are not well-formed status
// lines are ignored. onEvent, when non-nil, observes every recognized
// event before the verdict; events after the terminal marker are never
// read.
func Interpret(r io.Reader, onEvent func(status.Event)) Outcome {
	scanner := bufio.NewScanner(r)

	lastPosition := ""
	for scanner.Scan() {
		e, ok := status.Parse(scanner.Text())
		if !ok {
			continue
		}
		if onEvent != nil {
			onEvent(e)
		}

		if e.Kind == status.Reached {
			lastPosition = e.Color.String() + "_REACHED"
		}

		switch e.Kind {
		case status.Done:
			return Outcome{Phase: PhaseCompleted, Message: msgCompleted, BoardPosition: lastPosition}
		case status.AbortObstacle:
			return Outcome{
				Phase:         PhaseError,
				Message:       fmt.Sprintf("aborted: obstacle at %dmm", e.DistanceMM),
				BoardPosition: lastPosition,
			}
		case status.AbortTimeout:
			return Outcome{
				Phase:         PhaseError,
				Message:       "aborted: run budget exceeded",
				BoardPosition: lastPosition,
			}
		}
	}

	// The stream ended with no terminal marker: process crash, transport
	// drop, or cancellation. Still one report, never a silent drop.
	if err := scanner.Err(); err != nil {
		return Outcome{
			Phase:         PhaseError,
			Message:       msgStreamFail + ": " + err.Error(),
			BoardPosition: lastPosition,
		}
	}
	return Outcome{Phase: PhaseError, Message: msgStreamEnd, BoardPosition: lastPosition}
}
