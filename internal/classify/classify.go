// internal/classify/classify.go

// Package classify implements the hybrid stripe-detection pipeline:
// discrete color recognition first, smoothed reflectance fallback second,
// debounced confirmation last.
//
// Discrete sensing is prone to false negatives under variable ambient
// light at this sensor height; the reflectance fallback trades precision
// for robustness. Per cycle the outcome is either one stripe color or
// zone.None (ambiguous, no stripe claimed).
package classify

import "github.com/tamzrod/zone-navigator/internal/zone"

// Classifier performs one hybrid classification per control cycle.
// Not safe for concurrent use; the control loop is single-threaded.
type Classifier struct {
	cal    Calibration
	window *Window
}

// NewClassifier builds a classifier. The calibration must already be
// validated.
func NewClassifier(cal Calibration, windowSize int) *Classifier {
	return &Classifier{cal: cal, window: NewWindow(windowSize)}
}

// Seed fills the smoothing window with an initial reading.
func (c *Classifier) Seed(reflectance float64) {
	c.window.Fill(reflectance)
}

// Step consumes one cycle's sensor pair and returns the claimed stripe.
//
// The discrete reading wins when it names a stripe color. The reflectance
// reading is pushed into the window regardless, so the fallback mean stays
// live across discrete hits.
func (c *Classifier) Step(discrete zone.Color, reflectance float64) zone.Color {
	c.window.Push(reflectance)

	if discrete.IsStripe() {
		return discrete
	}
	return c.cal.Classify(c.window.Mean())
}

// Mean exposes the current smoothed reflectance for logging.
func (c *Classifier) Mean() float64 { return c.window.Mean() }

// ---- DEBOUNCE ----

// Debouncer requires N consecutive identical stripe claims before
// confirming a transition. A single divergent cycle resets the count.
type Debouncer struct {
	need  int
	last  zone.Color
	count int
}

// NewDebouncer builds a debouncer requiring need consecutive hits.
// need must be >= 2 (a single reading is never trusted); validated by
// config before this point, enforced here for embedders.
func NewDebouncer(need int) *Debouncer {
	if need < 2 {
		need = 2
	}
	return &Debouncer{need: need}
}

// Observe records one cycle's claim and reports whether a stripe is now
// confirmed. zone.None always resets.
func (d *Debouncer) Observe(c zone.Color) (zone.Color, bool) {
	if !c.IsStripe() {
		d.last = zone.None
		d.count = 0
		return zone.None, false
	}

	if c == d.last {
		d.count++
	} else {
		d.last = c
		d.count = 1
	}

	if d.count >= d.need {
		return c, true
	}
	return zone.None, false
}

// Reset clears the hit counter, e.g. after a correction maneuver.
func (d *Debouncer) Reset() {
	d.last = zone.None
	d.count = 0
}
