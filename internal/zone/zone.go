// internal/zone/zone.go

// Package zone defines the cross-package vocabulary for the sorter board:
// stripe colors, their physical order, scenarios, and the fixed
// scenario-to-target mapping.
package zone

import "strings"

// Color identifies one painted stripe on the board.
// None means "no stripe claimed".
type Color string

const (
	None   Color = "NONE"
	Green  Color = "GREEN"
	Yellow Color = "YELLOW"
	Red    Color = "RED"
)

func (c Color) String() string { return string(c) }

// IsStripe reports whether c is one of the three painted stripe colors.
func (c Color) IsStripe() bool {
	switch c {
	case Green, Yellow, Red:
		return true
	default:
		return false
	}
}

// ---- BOARD ORDER ----

// Physical order on the board: GREEN nearest start, then YELLOW, then RED.
// This is layout, not logic: the navigator only compares indices.
var boardOrder = [...]Color{Green, Yellow, Red}

// BoardIndex returns the stripe's position along the board (0 = nearest
// start). ok is false for None or unknown colors.
func (c Color) BoardIndex() (int, bool) {
	for i, bc := range boardOrder {
		if bc == c {
			return i, true
		}
	}
	return 0, false
}

// ---- SCENARIO ----

// Scenario selects the behavior profile for one run.
// Immutable for the duration of a run.
type Scenario string

const (
	RecyclingOK  Scenario = "RECYCLING_OK"
	Contaminated Scenario = "CONTAMINATED"
	Inspection   Scenario = "INSPECTION"
)

func (s Scenario) String() string { return string(s) }

// IsValid reports whether s is a recognised scenario value.
func (s Scenario) IsValid() bool {
	switch s {
	case RecyclingOK, Contaminated, Inspection:
		return true
	default:
		return false
	}
}

// ParseScenario normalizes an externally supplied command string to a
// Scenario. Synonyms used by upstream case systems are accepted.
func ParseScenario(raw string) (Scenario, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "RECYCLING_OK", "OK", "NORMAL":
		return RecyclingOK, true
	case "CONTAMINATED", "LANDFILL", "ROUTE_TO_LANDFILL":
		return Contaminated, true
	case "INSPECTION", "FIELD_INSPECTION", "URGENT_INSPECTION", "URGENT_FIELD_INSPECTION":
		return Inspection, true
	default:
		return "", false
	}
}

// ---- TARGET MAPPING ----

// targets is the fixed scenario-to-stripe policy. Configuration-as-data:
// the state machine never mentions concrete colors.
var targets = map[Scenario]Color{
	RecyclingOK:  Green,
	Contaminated: Red,
	Inspection:   Yellow,
}

// TargetColor returns the stripe the scenario drives to.
// ok is false for invalid scenarios.
func TargetColor(s Scenario) (Color, bool) {
	c, ok := targets[s]
	return c, ok
}

// ---- DRIVE PROFILE ----

// AlertPattern selects the indicator behavior while driving.
type AlertPattern int

const (
	AlertNone AlertPattern = iota
	AlertContinuous
	AlertPulsed
)

// DriveProfile carries the presentation/performance parameters a scenario
// implies. These never alter classification or state-machine logic.
type DriveProfile struct {
	Turbo bool
	Alert AlertPattern
}

// Profile returns the drive profile for a scenario.
func Profile(s Scenario) DriveProfile {
	switch s {
	case Contaminated:
		return DriveProfile{Turbo: true, Alert: AlertContinuous}
	case Inspection:
		return DriveProfile{Turbo: true, Alert: AlertPulsed}
	default:
		return DriveProfile{}
	}
}
