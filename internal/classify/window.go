// internal/classify/window.go
package classify

// Window is a fixed-capacity ring of the most recent raw reflectance
// readings. Owned by the sensing step; never read externally.
type Window struct {
	buf  []float64
	next int
	n    int
}

// NewWindow creates a window of the given capacity. Capacity must be >= 1;
// the constructor panics otherwise because it is a programming error, not
// a runtime condition (config validation rejects it earlier).
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		panic("classify: window capacity must be >= 1")
	}
	return &Window{buf: make([]float64, capacity)}
}

// Push records one raw reading, overwriting the oldest when full.
func (w *Window) Push(v float64) {
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.n < len(w.buf) {
		w.n++
	}
}

// Fill seeds every slot with v. Used once at run start so the mean does not
// ramp up from zero.
func (w *Window) Fill(v float64) {
	for i := range w.buf {
		w.buf[i] = v
	}
	w.n = len(w.buf)
	w.next = 0
}

// Mean returns the arithmetic mean of the recorded readings.
// An empty window means 0.
func (w *Window) Mean() float64 {
	if w.n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < w.n; i++ {
		sum += w.buf[i]
	}
	return sum / float64(w.n)
}

// Reset discards all recorded readings.
func (w *Window) Reset() {
	w.n = 0
	w.next = 0
}
