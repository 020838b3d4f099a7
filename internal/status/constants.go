// internal/status/constants.go
package status

// Line protocol vocabulary. These values define the wire protocol between
// navigator and bridge and MUST NOT be configurable.

// Prefix opens every status line. Lines without it are free-form output
// and are ignored by the bridge.
const Prefix = "STATUS:"

// ---- TAGS ----

const (
	tagStart         = "START"
	tagTargetColor   = "TARGET_COLOR"
	tagZone          = "ZONE"
	tagWrongWayFor   = "WRONG_WAY_FOR_"
	tagTurnAround    = "TURN_AROUND"
	tagAbortObstacle = "ABORT_OBSTACLE"
	tagAbortTimeout  = "ABORT_TIMEOUT"
	tagDone          = "DONE"

	// suffix of the arrival tag: <COLOR>_REACHED
	suffixReached = "_REACHED"
)

// ---- KEYS ----

const (
	keyScenario   = "scenario"
	keyDistanceMM = "distance_mm"
	keyElapsedMS  = "elapsed_ms"
)
