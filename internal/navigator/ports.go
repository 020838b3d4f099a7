// internal/navigator/ports.go
package navigator

import "github.com/tamzrod/zone-navigator/internal/zone"

// Hardware ports. The navigator depends on these interfaces only; the
// concrete transport behind them (hub peripherals, simulator, test fakes)
// is someone else's problem.

// Drive abstracts the paired drive motors.
type Drive interface {
	// Forward runs both motors at the given speed (deg/s).
	Forward(speed int) error
	// Stop halts both motors.
	Stop() error
	// TurnAround spins the robot in place by half a turn. Blocking.
	TurnAround() error
	// Push drives the given motor angle forward, then coasts. Blocking.
	// Used for the final drive into a zone once the sensor is over it.
	Push(speed, angle int) error
}

// ColorSensor abstracts the downward color/reflectance sensor.
type ColorSensor interface {
	// DiscreteColor returns the sensor's native color classification,
	// zone.None when the firmware is not confident.
	DiscreteColor() (zone.Color, error)
	// Reflection returns the raw reflectance reading.
	Reflection() (float64, error)
}

// RangeFinder abstracts the forward distance sensor.
type RangeFinder interface {
	// DistanceMM returns the measured forward distance in millimeters.
	DistanceMM() (int, error)
}

// Indicator abstracts the hub display/speaker. Best effort: indication
// failures never affect the run.
type Indicator interface {
	// ShowReady signals the run is starting.
	ShowReady()
	// ShowAlert renders one phase of the scenario's alert pattern.
	ShowAlert(phase bool)
	// ShowArrived signals terminal success.
	ShowArrived()
	// Off clears the indicator.
	Off()
}

// Ports bundles the hardware dependencies of one navigator.
// Drive, Color and Range are required; Indicator may be nil.
type Ports struct {
	Drive     Drive
	Color     ColorSensor
	Range     RangeFinder
	Indicator Indicator
}

// nopIndicator stands in when no indicator hardware is wired.
type nopIndicator struct{}

func (nopIndicator) ShowReady()     {}
func (nopIndicator) ShowAlert(bool) {}
func (nopIndicator) ShowArrived()   {}
func (nopIndicator) Off()           {}
