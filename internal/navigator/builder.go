// internal/navigator/builder.go
package navigator

import (
	"time"

	"github.com/tamzrod/zone-navigator/internal/classify"
	cfg "github.com/tamzrod/zone-navigator/internal/config"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// BuildConfig converts validated, normalized file configuration plus a
// scenario selection into the immutable runtime config of one run.
// No validation here: Load/Validate/Normalize run before this, and New
// re-checks what it must.
func BuildConfig(c *cfg.Config, scenario zone.Scenario) Config {
	n := c.Navigator

	return Config{
		Scenario: scenario,
		Calibration: classify.Calibration{
			Green:     n.Calibration.Green,
			Yellow:    n.Calibration.Yellow,
			Red:       n.Calibration.Red,
			Tolerance: n.Calibration.Tolerance,
			RangeMin:  n.Calibration.RangeMin,
			RangeMax:  n.Calibration.RangeMax,
		},
		CyclePeriod:    time.Duration(n.Sampling.CycleMs) * time.Millisecond,
		WindowSize:     n.Sampling.Window,
		Debounce:       n.Sampling.Debounce,
		WarmupCycles:   n.Sampling.WarmupCycles,
		StopDistanceMM: n.Safety.StopDistanceMM,
		RunBudget:      time.Duration(n.Safety.RunBudgetMs) * time.Millisecond,
		BaseSpeed:      n.Drive.BaseSpeed,
		TurboSpeed:     n.Drive.TurboSpeed,
		PushAngle:      n.Drive.PushAngle,
	}
}
