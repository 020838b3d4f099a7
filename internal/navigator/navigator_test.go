// internal/navigator/navigator_test.go
package navigator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/zone-navigator/internal/classify"
	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// ---- scripted fake hardware ----

// fakeHW replays per-sensor scripts; the last value repeats forever.
type fakeHW struct {
	dist []int
	cols []zone.Color
	refl []float64

	di, ci, ri int

	forwards, stops, turns, pushes int
}

func (f *fakeHW) Forward(speed int) error     { f.forwards++; return nil }
func (f *fakeHW) Stop() error                 { f.stops++; return nil }
func (f *fakeHW) TurnAround() error           { f.turns++; return nil }
func (f *fakeHW) Push(speed, angle int) error { f.pushes++; return nil }

func (f *fakeHW) DistanceMM() (int, error) {
	v := f.dist[f.di]
	if f.di < len(f.dist)-1 {
		f.di++
	}
	return v, nil
}

func (f *fakeHW) DiscreteColor() (zone.Color, error) {
	v := f.cols[f.ci]
	if f.ci < len(f.cols)-1 {
		f.ci++
	}
	return v, nil
}

func (f *fakeHW) Reflection() (float64, error) {
	v := f.refl[f.ri]
	if f.ri < len(f.refl)-1 {
		f.ri++
	}
	return v, nil
}

func (f *fakeHW) ports() Ports {
	return Ports{Drive: f, Color: f, Range: f}
}

// ---- helpers ----

func deployedCal() classify.Calibration {
	return classify.Calibration{
		Green: 11, Yellow: 13.5, Red: 5,
		Tolerance: 2.0,
		RangeMin:  0, RangeMax: 25,
	}
}

func testConfig(s zone.Scenario) Config {
	return Config{
		Scenario:       s,
		Calibration:    deployedCal(),
		CyclePeriod:    time.Millisecond,
		WindowSize:     3,
		Debounce:       3,
		WarmupCycles:   2,
		StopDistanceMM: 50,
		RunBudget:      2 * time.Second,
		BaseSpeed:      200,
		TurboSpeed:     500,
		PushAngle:      250,
	}
}

func collectEvents() (EmitFunc, *[]status.Event) {
	var events []status.Event
	return func(e status.Event) { events = append(events, e) }, &events
}

func kinds(events []status.Event) []status.Kind {
	out := make([]status.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// ---- constructor ----

func TestNew_RejectsAmbiguousCalibration(t *testing.T) {
	cfg := testConfig(zone.RecyclingOK)
	cfg.Calibration.Yellow = 12.0 // under one tolerance from green

	hw := &fakeHW{dist: []int{9999}, cols: []zone.Color{zone.None}, refl: []float64{20}}
	_, err := New(cfg, hw.ports(), nil, nil)
	require.Error(t, err)
}

func TestNew_RejectsBadInputs(t *testing.T) {
	hw := &fakeHW{dist: []int{9999}, cols: []zone.Color{zone.None}, refl: []float64{20}}

	cfg := testConfig(zone.RecyclingOK)
	cfg.Scenario = "ESCALATE"
	_, err := New(cfg, hw.ports(), nil, nil)
	require.Error(t, err)

	cfg = testConfig(zone.RecyclingOK)
	cfg.Debounce = 1
	_, err = New(cfg, hw.ports(), nil, nil)
	require.Error(t, err)

	cfg = testConfig(zone.RecyclingOK)
	_, err = New(cfg, Ports{Drive: hw, Color: hw}, nil, nil)
	require.Error(t, err)
}

// ---- obstacle handling ----

func TestRun_ObstacleBoundary(t *testing.T) {
	// threshold 50: 51mm keeps driving, 49mm aborts within one cycle
	hw := &fakeHW{
		dist: []int{51, 49},
		cols: []zone.Color{zone.None},
		refl: []float64{20},
	}

	emit, events := collectEvents()
	n, err := New(testConfig(zone.RecyclingOK), hw.ports(), nil, emit)
	require.NoError(t, err)

	state := n.Run(context.Background())
	require.Equal(t, Aborted, state)
	require.Equal(t, 1, hw.stops)

	last := (*events)[len(*events)-1]
	require.Equal(t, status.AbortObstacle, last.Kind)
	require.Equal(t, 49, last.DistanceMM)
}

func TestRun_ObstacleSpecExample(t *testing.T) {
	// reading drops to 40mm mid-run with threshold 50mm
	hw := &fakeHW{
		dist: []int{200, 200, 200, 40},
		cols: []zone.Color{zone.None},
		refl: []float64{20},
	}

	emit, events := collectEvents()
	n, err := New(testConfig(zone.Contaminated), hw.ports(), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Aborted, n.Run(context.Background()))

	last := (*events)[len(*events)-1]
	require.Equal(t, status.AbortObstacle, last.Kind)
	require.Equal(t, 40, last.DistanceMM)
	require.Equal(t, "STATUS:ABORT_OBSTACLE distance_mm=40", status.Encode(last))
}

// ---- run budget ----

func TestRun_BudgetTimeout(t *testing.T) {
	hw := &fakeHW{
		dist: []int{9999},
		cols: []zone.Color{zone.None},
		refl: []float64{20}, // background, never a stripe
	}

	cfg := testConfig(zone.RecyclingOK)
	cfg.RunBudget = 20 * time.Millisecond

	emit, events := collectEvents()
	n, err := New(cfg, hw.ports(), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Aborted, n.Run(context.Background()))

	last := (*events)[len(*events)-1]
	require.Equal(t, status.AbortTimeout, last.Kind)
	require.GreaterOrEqual(t, last.Elapsed, cfg.RunBudget)
}

// ---- debounce ----

func TestRun_SingleCycleSpurDoesNotArrive(t *testing.T) {
	// One spurious GREEN reading inside stable background must not count
	// as arrival; the run exhausts its budget instead.
	cols := []zone.Color{zone.None, zone.None} // seed + precheck era
	for i := 0; i < 10; i++ {
		cols = append(cols, zone.None)
	}
	cols = append(cols, zone.Green) // the spur
	cols = append(cols, zone.None)

	hw := &fakeHW{dist: []int{9999}, cols: cols, refl: []float64{20}}

	cfg := testConfig(zone.RecyclingOK)
	cfg.RunBudget = 50 * time.Millisecond

	emit, events := collectEvents()
	n, err := New(cfg, hw.ports(), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Aborted, n.Run(context.Background()))
	for _, e := range *events {
		require.NotEqual(t, status.Reached, e.Kind)
	}
}

func TestRun_SkippedTargetFlagsWrongWay(t *testing.T) {
	// Seeking YELLOW, the robot confirms GREEN and then RED: the target
	// was crossed without being confirmed. That must trigger a wrong-way
	// correction, never count as arrival.
	// pre-roll (precheck plus warmup), then green, a gap, then red;
	// the trailing None repeats until the budget aborts the run
	cols := []zone.Color{
		zone.None, zone.None, zone.None,
		zone.Green, zone.Green, zone.Green,
		zone.None,
		zone.Red, zone.Red, zone.Red,
		zone.None,
	}
	hw := &fakeHW{dist: []int{9999}, cols: cols, refl: []float64{20}}

	cfg := testConfig(zone.Inspection) // target YELLOW
	cfg.RunBudget = 50 * time.Millisecond

	emit, events := collectEvents()
	n, err := New(cfg, hw.ports(), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Aborted, n.Run(context.Background()))

	var wrongWays, turnArounds int
	for _, e := range *events {
		switch e.Kind {
		case status.WrongWay:
			wrongWays++
			require.Equal(t, zone.Yellow, e.Color)
		case status.TurnAround:
			turnArounds++
		case status.Reached:
			t.Fatalf("confirmed RED past YELLOW must not count as arrival")
		}
	}
	require.Equal(t, 1, wrongWays)
	require.Equal(t, 1, turnArounds)
	require.Equal(t, 1, hw.turns)
}

// ---- reflectance fallback, spec end-to-end ----

func TestRun_ReflectanceFallbackToRed(t *testing.T) {
	// CONTAMINATED with the deployed calibration; the discrete channel
	// never fires and the smoothed reflectance trends to ~5 (red band).
	refl := []float64{20, 20, 20, 20} // seed, precheck, warmup cycles
	for i := 0; i < 30; i++ {
		refl = append(refl, 5)
	}

	hw := &fakeHW{dist: []int{9999}, cols: []zone.Color{zone.None}, refl: refl}

	emit, events := collectEvents()
	n, err := New(testConfig(zone.Contaminated), hw.ports(), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Arrived, n.Run(context.Background()))
	require.Equal(t, []status.Kind{
		status.Start, status.TargetColor, status.Reached, status.Zone, status.Done,
	}, kinds(*events))

	require.Equal(t, zone.Red, (*events)[1].Color)
	require.Equal(t, zone.Red, (*events)[2].Color)
	require.Equal(t, zone.Contaminated, (*events)[3].Scenario)

	require.Equal(t, 1, hw.pushes, "final push into the zone")
	require.GreaterOrEqual(t, hw.stops, 1)
}

// ---- simulator integration ----

// testBoard is a compact board for millisecond-cycle tests.
func testBoard(cycle time.Duration, startMM int) SimConfig {
	return SimConfig{
		Stripes: []SimStripe{
			{Color: zone.Green, FromMM: 30, ToMM: 60, Reflectance: 11},
			{Color: zone.Yellow, FromMM: 80, ToMM: 110, Reflectance: 13.5},
			{Color: zone.Red, FromMM: 130, ToMM: 160, Reflectance: 5},
		},
		ObstacleMM:  400,
		StartMM:     startMM,
		Background:  20,
		MMPerDeg:    1.0,
		CyclePeriod: cycle,
	}
}

func simPorts(s *Sim) Ports {
	return Ports{Drive: s, Color: s, Range: s, Indicator: s}
}

func TestRun_SimArrivesAtTargetZone(t *testing.T) {
	cfg := testConfig(zone.Contaminated) // target RED, turbo
	cfg.PushAngle = 20

	sim := NewSim(testBoard(cfg.CyclePeriod, 0))
	emit, events := collectEvents()
	n, err := New(cfg, simPorts(sim), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Arrived, n.Run(context.Background()))

	ks := kinds(*events)
	require.Equal(t, status.Start, ks[0])
	require.Equal(t, status.TargetColor, ks[1])
	require.Equal(t, []status.Kind{status.Reached, status.Zone, status.Done}, ks[len(ks)-3:])

	// sensor confirmed red and the chassis pushed into the zone
	require.GreaterOrEqual(t, sim.PositionMM(), 130)
	require.Less(t, sim.PositionMM(), 250)
	require.Equal(t, 1, sim.ArrivedShown)
	require.Positive(t, sim.AlertsShown, "contaminated runs a continuous alert")
}

func TestRun_SimWrongWayCorrection(t *testing.T) {
	// Seeking GREEN from a start point past it, facing away: the robot
	// confirms YELLOW then RED, flags wrong way, turns around and finds
	// green on the way back.
	cfg := testConfig(zone.RecyclingOK)
	cfg.PushAngle = 10
	cfg.BaseSpeed = 500 // keep the round trip under the test budget

	sim := NewSim(testBoard(cfg.CyclePeriod, 70))
	emit, events := collectEvents()
	n, err := New(cfg, simPorts(sim), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Arrived, n.Run(context.Background()))

	var sawWrongWay, sawTurn bool
	for _, e := range *events {
		if e.Kind == status.WrongWay {
			sawWrongWay = true
			require.Equal(t, zone.Green, e.Color)
		}
		if e.Kind == status.TurnAround {
			sawTurn = true
		}
	}
	require.True(t, sawWrongWay)
	require.True(t, sawTurn)

	last := (*events)[len(*events)-1]
	require.Equal(t, status.Done, last.Kind)
}

func TestRun_SimObstacleBeforeTarget(t *testing.T) {
	cfg := testConfig(zone.Contaminated)

	board := testBoard(cfg.CyclePeriod, 0)
	board.ObstacleMM = 100 // in front of the red zone
	sim := NewSim(board)

	emit, events := collectEvents()
	n, err := New(cfg, simPorts(sim), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Aborted, n.Run(context.Background()))

	last := (*events)[len(*events)-1]
	require.Equal(t, status.AbortObstacle, last.Kind)
	require.Less(t, last.DistanceMM, cfg.StopDistanceMM)
}

func TestRun_PrecheckAlreadyOnTarget(t *testing.T) {
	cfg := testConfig(zone.RecyclingOK)

	sim := NewSim(testBoard(cfg.CyclePeriod, 40)) // inside green
	emit, events := collectEvents()
	n, err := New(cfg, simPorts(sim), nil, emit)
	require.NoError(t, err)

	require.Equal(t, Arrived, n.Run(context.Background()))
	require.Equal(t, []status.Kind{
		status.Start, status.TargetColor, status.Reached, status.Zone, status.Done,
	}, kinds(*events))

	// no motion at all
	require.Equal(t, 40, sim.PositionMM())
}

func TestRun_ContextCancelStopsWithoutTerminalEvent(t *testing.T) {
	hw := &fakeHW{dist: []int{9999}, cols: []zone.Color{zone.None}, refl: []float64{20}}

	ctx, cancel := context.WithCancel(context.Background())
	emit, events := collectEvents()
	n, err := New(testConfig(zone.RecyclingOK), hw.ports(), nil, emit)
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	state := n.Run(ctx)
	require.Equal(t, Seeking, state)
	for _, e := range *events {
		require.False(t, e.IsTerminal())
	}
	require.GreaterOrEqual(t, hw.stops, 1)
}
