// internal/status/encode.go
package status

import "strconv"

// Encode serializes one event to its protocol line, without trailing
// newline. No IO. No side effects.
func Encode(e Event) string {
	switch e.Kind {
	case Start:
		return Prefix + tagStart + " " + keyScenario + "=" + e.Scenario.String()
	case TargetColor:
		return Prefix + tagTargetColor + "=" + e.Color.String()
	case Reached:
		return Prefix + e.Color.String() + suffixReached
	case Zone:
		return Prefix + tagZone + "=" + e.Scenario.String()
	case WrongWay:
		return Prefix + tagWrongWayFor + e.Color.String()
	case TurnAround:
		return Prefix + tagTurnAround
	case AbortObstacle:
		return Prefix + tagAbortObstacle + " " + keyDistanceMM + "=" + strconv.Itoa(e.DistanceMM)
	case AbortTimeout:
		return Prefix + tagAbortTimeout + " " + keyElapsedMS + "=" + strconv.FormatInt(e.Elapsed.Milliseconds(), 10)
	case Done:
		return Prefix + tagDone
	default:
		return ""
	}
}
