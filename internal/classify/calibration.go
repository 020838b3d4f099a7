// internal/classify/calibration.go
package classify

import (
	"fmt"
	"math"

	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Calibration holds the per-color reflectance references and the shared
// tolerance margin. Read-only during a run.
type Calibration struct {
	Green  float64
	Yellow float64
	Red    float64

	// Tolerance is the half-width of each color's acceptance band.
	Tolerance float64

	// Readings outside [RangeMin, RangeMax] are discarded as sensor junk.
	RangeMin float64
	RangeMax float64
}

// Validate checks the separability invariant: every pair of references
// must be more than one tolerance apart. Closer than that, a reading at one
// reference sits inside another color's band and the target can never be
// claimed. Bands overlapping between one and two tolerances are permitted:
// readings in the overlap classify as no stripe via the exactly-one rule,
// which degrades to indecision rather than misclassification. A run must
// refuse to start on a calibration that fails here.
func (c Calibration) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("calibration: tolerance must be > 0, got %v", c.Tolerance)
	}
	if c.RangeMax <= c.RangeMin {
		return fmt.Errorf("calibration: valid range %v..%v is empty", c.RangeMin, c.RangeMax)
	}

	refs := []struct {
		color zone.Color
		value float64
	}{
		{zone.Green, c.Green},
		{zone.Yellow, c.Yellow},
		{zone.Red, c.Red},
	}

	for _, r := range refs {
		if r.value < c.RangeMin || r.value > c.RangeMax {
			return fmt.Errorf(
				"calibration: %s reference %v outside valid range %v..%v",
				r.color, r.value, c.RangeMin, c.RangeMax,
			)
		}
	}

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			gap := math.Abs(refs[i].value - refs[j].value)
			if gap <= c.Tolerance {
				return fmt.Errorf(
					"calibration: %s (%v) and %s (%v) are separated by %v, need more than the tolerance %v",
					refs[i].color, refs[i].value,
					refs[j].color, refs[j].value,
					gap, c.Tolerance,
				)
			}
		}
	}

	return nil
}

// Classify maps a smoothed reflectance mean to a stripe color.
// Exactly-one rule: the mean must fall inside exactly one color's band;
// zero or multiple matches mean no stripe is claimed. References closer
// than two tolerances leave an overlap region, and readings there hit the
// multiple-match arm.
func (c Calibration) Classify(mean float64) zone.Color {
	if mean < c.RangeMin || mean > c.RangeMax {
		return zone.None
	}

	matched := zone.None
	for _, r := range []struct {
		color zone.Color
		value float64
	}{
		{zone.Green, c.Green},
		{zone.Yellow, c.Yellow},
		{zone.Red, c.Red},
	} {
		if math.Abs(mean-r.value) <= c.Tolerance {
			if matched != zone.None {
				return zone.None
			}
			matched = r.color
		}
	}

	return matched
}
