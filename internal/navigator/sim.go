// internal/navigator/sim.go
package navigator

import (
	"time"

	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Sim is an in-process stand-in for the robot hardware: a board described
// as data, a position integrator, and sensor readings derived from the
// position. It implements all four hardware ports, so a navigator wired to
// a Sim runs the exact production control loop.
//
// Motion is integrated once per control cycle, on the DistanceMM call,
// because the obstacle poll is the first sensor read of every cycle.
// Not safe for concurrent use, same as the navigator itself.
type Sim struct {
	cfg SimConfig

	posMM float64
	dir   int // +1 toward the far end, -1 back toward start
	speed int // deg/s, 0 = stopped

	// indicator call counts, for assertions
	ReadyShown   int
	AlertsShown  int
	ArrivedShown int
}

// SimStripe is one painted region of the simulated board.
type SimStripe struct {
	Color       zone.Color
	FromMM      int
	ToMM        int
	Reflectance float64
}

// SimConfig describes the simulated board and chassis.
type SimConfig struct {
	Stripes []SimStripe

	// StartMM is the robot's initial position.
	StartMM int

	// ObstacleMM is the absolute position of the obstacle at the board's
	// far end. Zero means no obstacle.
	ObstacleMM int

	// Background is the reflectance read between stripes.
	Background float64

	// MMPerDeg converts motor degrees to travel. Zero defaults to the
	// deployed chassis geometry (56mm wheels).
	MMPerDeg float64

	// CyclePeriod must match the navigator's cycle period; it scales the
	// per-cycle travel.
	CyclePeriod time.Duration

	// Discrete enables the native color channel. Disabled, the sim
	// exercises the reflectance fallback path.
	Discrete bool
}

// 56mm wheel: pi * 56 / 360
const defaultMMPerDeg = 0.49

// NewSim builds a simulator facing the far end of the board.
func NewSim(cfg SimConfig) *Sim {
	if cfg.MMPerDeg == 0 {
		cfg.MMPerDeg = defaultMMPerDeg
	}
	return &Sim{cfg: cfg, posMM: float64(cfg.StartMM), dir: 1}
}

// PositionMM returns the current simulated position.
func (s *Sim) PositionMM() int { return int(s.posMM) }

// ---- Drive ----

func (s *Sim) Forward(speed int) error {
	s.speed = speed
	return nil
}

func (s *Sim) Stop() error {
	s.speed = 0
	return nil
}

func (s *Sim) TurnAround() error {
	s.dir = -s.dir
	return nil
}

func (s *Sim) Push(speed, angle int) error {
	s.posMM += float64(angle) * s.cfg.MMPerDeg * float64(s.dir)
	return nil
}

// ---- ColorSensor ----

func (s *Sim) DiscreteColor() (zone.Color, error) {
	if !s.cfg.Discrete {
		return zone.None, nil
	}
	if st := s.stripeAt(s.posMM); st != nil {
		return st.Color, nil
	}
	return zone.None, nil
}

func (s *Sim) Reflection() (float64, error) {
	if st := s.stripeAt(s.posMM); st != nil {
		return st.Reflectance, nil
	}
	return s.cfg.Background, nil
}

// ---- RangeFinder ----

// DistanceMM advances the position by one cycle's travel and returns the
// distance to the obstacle ahead. Far-out readings are reported as 9999,
// matching the sensor's out-of-range behavior.
func (s *Sim) DistanceMM() (int, error) {
	s.posMM += float64(s.speed) * s.cfg.MMPerDeg * s.cfg.CyclePeriod.Seconds() * float64(s.dir)

	if s.cfg.ObstacleMM == 0 || s.dir < 0 {
		return 9999, nil
	}
	d := float64(s.cfg.ObstacleMM) - s.posMM
	if d < 0 {
		d = 0
	}
	if d > 9999 {
		d = 9999
	}
	return int(d), nil
}

// ---- Indicator ----

func (s *Sim) ShowReady()     { s.ReadyShown++ }
func (s *Sim) ShowAlert(bool) { s.AlertsShown++ }
func (s *Sim) ShowArrived()   { s.ArrivedShown++ }
func (s *Sim) Off()           {}

func (s *Sim) stripeAt(pos float64) *SimStripe {
	for i := range s.cfg.Stripes {
		st := &s.cfg.Stripes[i]
		if pos >= float64(st.FromMM) && pos < float64(st.ToMM) {
			return st
		}
	}
	return nil
}

// DefaultBoard returns the deployed demo board: three stripes in order,
// gaps between them, obstacle past the red zone.
func DefaultBoard(cycle time.Duration) SimConfig {
	return SimConfig{
		Stripes: []SimStripe{
			{Color: zone.Green, FromMM: 250, ToMM: 450, Reflectance: 11},
			{Color: zone.Yellow, FromMM: 550, ToMM: 750, Reflectance: 13.5},
			{Color: zone.Red, FromMM: 850, ToMM: 1050, Reflectance: 5},
		},
		StartMM:     0,
		ObstacleMM:  1250,
		Background:  20,
		CyclePeriod: cycle,
	}
}
