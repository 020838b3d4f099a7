// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/zone-navigator/internal/classify"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration. Defaults belong to Normalize, so
// zero values that Normalize fills in are accepted here.
func Validate(cfg *Config) error {
	n := cfg.Navigator

	// ------------------------------------------------------------
	// CALIBRATION (separability is a hard precondition for motion)
	// ------------------------------------------------------------

	cal := classify.Calibration{
		Green:     n.Calibration.Green,
		Yellow:    n.Calibration.Yellow,
		Red:       n.Calibration.Red,
		Tolerance: n.Calibration.Tolerance,
		RangeMin:  n.Calibration.RangeMin,
		RangeMax:  n.Calibration.RangeMax,
	}
	// An omitted valid range is filled by Normalize; validate against the
	// default it will apply. Local copy only, cfg stays untouched.
	if cal.RangeMin == 0 && cal.RangeMax == 0 {
		cal.RangeMax = DefaultRangeMax
	}
	if err := cal.Validate(); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// SAMPLING
	// ------------------------------------------------------------

	if n.Sampling.CycleMs < 0 {
		return fmt.Errorf("config: sampling.cycle_ms must be >= 0, got %d", n.Sampling.CycleMs)
	}
	if n.Sampling.Window < 0 {
		return fmt.Errorf("config: sampling.window must be >= 0, got %d", n.Sampling.Window)
	}
	if n.Sampling.Debounce == 1 {
		// a single reading is never trusted; 0 means "use the default"
		return fmt.Errorf("config: sampling.debounce must be >= 2, got %d", n.Sampling.Debounce)
	}
	if n.Sampling.Debounce < 0 || n.Sampling.WarmupCycles < 0 {
		return fmt.Errorf("config: sampling values must not be negative")
	}

	// ------------------------------------------------------------
	// SAFETY
	// ------------------------------------------------------------

	if n.Safety.StopDistanceMM < 0 {
		return fmt.Errorf("config: safety.stop_distance_mm must be >= 0, got %d", n.Safety.StopDistanceMM)
	}
	if n.Safety.RunBudgetMs < 0 {
		return fmt.Errorf("config: safety.run_budget_ms must be >= 0, got %d", n.Safety.RunBudgetMs)
	}

	// ------------------------------------------------------------
	// DRIVE
	// ------------------------------------------------------------

	if n.Drive.BaseSpeed < 0 || n.Drive.TurboSpeed < 0 || n.Drive.PushAngle < 0 {
		return fmt.Errorf("config: drive values must not be negative")
	}
	if n.Drive.TurboSpeed != 0 && n.Drive.BaseSpeed != 0 && n.Drive.TurboSpeed < n.Drive.BaseSpeed {
		return fmt.Errorf(
			"config: drive.turbo_speed (%d) must not be below drive.base_speed (%d)",
			n.Drive.TurboSpeed, n.Drive.BaseSpeed,
		)
	}

	// ------------------------------------------------------------
	// BRIDGE
	// ------------------------------------------------------------

	if cfg.Bridge.QueueCapacity < 0 {
		return fmt.Errorf("config: bridge.queue_capacity must be >= 0, got %d", cfg.Bridge.QueueCapacity)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", cfg.Logging.Format)
	}

	return nil
}
