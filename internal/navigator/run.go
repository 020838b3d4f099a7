// internal/navigator/run.go
package navigator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Alert pattern timing. Presentation only, protocol-irrelevant.
const (
	continuousAlertCycle = 800 * time.Millisecond // half on, half off
	pulsedAlertCycle     = time.Second
	pulsedAlertOn        = 150 * time.Millisecond
)

// Run executes the control loop until a terminal state is reached or ctx
// ends. Context cancellation halts the motors and returns without a
// terminal event: the run has no external cancel path, ctx only covers
// process shutdown, and the consumer sees an unterminated stream.
func (n *Navigator) Run(ctx context.Context) State {
	n.emit(status.Event{Kind: status.Start, Scenario: n.cfg.Scenario})
	n.emit(status.Event{Kind: status.TargetColor, Color: n.target})

	n.log.Info("run starting",
		zap.String("scenario", n.cfg.Scenario.String()),
		zap.String("target", n.target.String()),
		zap.Int("speed", n.speed),
	)

	// Seed the smoothing window so the mean does not ramp up from zero.
	if refl, err := n.ports.Color.Reflection(); err == nil {
		n.classifier.Seed(refl)
	} else {
		n.log.Warn("initial reflectance read failed", zap.Error(err))
	}

	// Already sitting on the target stripe? Arrival without motion.
	if n.precheck() {
		return n.state
	}

	n.ports.Indicator.ShowReady()
	if err := n.ports.Drive.Forward(n.speed); err != nil {
		n.log.Error("drive start failed", zap.Error(err))
	}
	n.startedAt = time.Now()

	ticker := time.NewTicker(n.cfg.CyclePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.halt()
			n.log.Warn("run interrupted", zap.String("state", n.state.String()))
			return n.state
		case <-ticker.C:
			if n.step() {
				return n.state
			}
		}
	}
}

// precheck performs a single undebounced classification before any motion
// and short-circuits the run when the start stripe already matches.
func (n *Navigator) precheck() bool {
	discrete, err := n.ports.Color.DiscreteColor()
	if err != nil {
		discrete = zone.None
	}
	refl, err := n.ports.Color.Reflection()
	if err != nil {
		return false
	}

	if n.classifier.Step(discrete, refl) != n.target {
		return false
	}

	n.log.Info("already on target stripe, skipping drive")
	n.arrive()
	return true
}

// step runs one control cycle. Returns true when the run is over.
func (n *Navigator) step() bool {
	n.cycle++

	// Obstacle check pre-empts everything and is never debounced: an
	// imminent collision must stop motion within one cycle.
	dist, err := n.ports.Range.DistanceMM()
	if err != nil {
		n.log.Warn("distance read failed", zap.Error(err))
	} else if dist < n.cfg.StopDistanceMM {
		n.abortObstacle(dist)
		return true
	}

	if elapsed := time.Since(n.startedAt); elapsed > n.cfg.RunBudget {
		n.abortTimeout(elapsed)
		return true
	}

	n.updateAlert()

	discrete, err := n.ports.Color.DiscreteColor()
	if err != nil {
		n.log.Warn("color read failed", zap.Error(err))
		discrete = zone.None
	}
	refl, err := n.ports.Color.Reflection()
	if err != nil {
		n.log.Warn("reflectance read failed", zap.Error(err))
		n.debounce.Reset()
		return false
	}

	claimed := n.classifier.Step(discrete, refl)

	// Warmup: suppress classification while rolling off the start stripe.
	// Obstacle and budget checks above are not suppressed.
	if n.cycle <= n.cfg.WarmupCycles {
		n.debounce.Reset()
		return false
	}

	confirmed, ok := n.debounce.Observe(claimed)
	if !ok {
		return false
	}

	n.seen[confirmed] = true

	if confirmed == n.target {
		n.arrive()
		return true
	}

	if n.wrongWay(confirmed) {
		n.correct()
		return false
	}

	n.lastConfirmed = confirmed
	return false
}

// wrongWay reports whether confirming cur means the robot is traveling
// away from the target, judged against the previously confirmed stripe
// and the board's fixed GREEN -> YELLOW -> RED order.
func (n *Navigator) wrongWay(cur zone.Color) bool {
	prevIdx, ok := n.lastConfirmed.BoardIndex()
	if !ok {
		// First confirmed stripe of this leg: no direction to judge yet.
		return false
	}
	curIdx, _ := cur.BoardIndex()
	if curIdx == prevIdx {
		return false
	}
	targetIdx, _ := n.target.BoardIndex()

	// Strictly increasing distance from the target.
	if absInt(curIdx-targetIdx) > absInt(prevIdx-targetIdx) {
		return true
	}
	// Crossed over the target without confirming it (overshoot).
	if (prevIdx-targetIdx)*(curIdx-targetIdx) < 0 {
		return true
	}
	return false
}

// correct executes the wrong-way maneuver: stop, announce, turn around,
// reset per-leg counters, resume seeking.
func (n *Navigator) correct() {
	n.state = Correcting
	if err := n.ports.Drive.Stop(); err != nil {
		n.log.Error("stop failed during correction", zap.Error(err))
	}

	n.emit(status.Event{Kind: status.WrongWay, Color: n.target})
	n.emit(status.Event{Kind: status.TurnAround})
	n.log.Info("wrong way, turning around", zap.String("target", n.target.String()))

	if err := n.ports.Drive.TurnAround(); err != nil {
		n.log.Error("turn around failed", zap.Error(err))
	}

	// Fresh leg: direction flipped, nothing seen yet, warmup re-applies.
	n.debounce.Reset()
	n.lastConfirmed = zone.None
	n.seen = make(map[zone.Color]bool)
	n.cycle = 0

	n.state = Seeking
	if err := n.ports.Drive.Forward(n.speed); err != nil {
		n.log.Error("drive restart failed", zap.Error(err))
	}
}

// arrive performs the terminal success sequence: final push so the chassis
// ends up inside the zone, halt, narrate.
func (n *Navigator) arrive() {
	if n.cfg.PushAngle > 0 && n.state == Seeking && n.cycle > 0 {
		if err := n.ports.Drive.Push(n.speed, n.cfg.PushAngle); err != nil {
			n.log.Error("final push failed", zap.Error(err))
		}
	}
	n.halt()
	n.state = Arrived
	n.ports.Indicator.ShowArrived()

	n.emit(status.Event{Kind: status.Reached, Color: n.target})
	n.emit(status.Event{Kind: status.Zone, Scenario: n.cfg.Scenario})
	n.emit(status.Event{Kind: status.Done})

	n.log.Info("arrived", zap.String("target", n.target.String()))
}

func (n *Navigator) abortObstacle(distMM int) {
	n.halt()
	n.state = Aborted
	n.emit(status.Event{Kind: status.AbortObstacle, DistanceMM: distMM})
	n.log.Warn("obstacle abort",
		zap.Int("distance_mm", distMM),
		zap.Int("threshold_mm", n.cfg.StopDistanceMM),
	)
}

func (n *Navigator) abortTimeout(elapsed time.Duration) {
	n.halt()
	n.state = Aborted
	n.emit(status.Event{Kind: status.AbortTimeout, Elapsed: elapsed})
	n.log.Warn("run budget exceeded", zap.Duration("elapsed", elapsed))
}

// halt stops the motors and clears the indicator. Best effort.
func (n *Navigator) halt() {
	if err := n.ports.Drive.Stop(); err != nil {
		n.log.Error("motor stop failed", zap.Error(err))
	}
	n.ports.Indicator.Off()
}

// updateAlert advances the scenario's indicator pattern. The phase is
// derived from wall time so cycle-period changes do not alter the rhythm.
func (n *Navigator) updateAlert() {
	var phase bool
	switch n.profile.Alert {
	case zone.AlertContinuous:
		phase = time.Since(n.startedAt)%continuousAlertCycle < continuousAlertCycle/2
	case zone.AlertPulsed:
		phase = time.Since(n.startedAt)%pulsedAlertCycle < pulsedAlertOn
	default:
		return
	}

	if !n.alertStarted || phase != n.alertPhase {
		n.alertStarted = true
		n.alertPhase = phase
		n.ports.Indicator.ShowAlert(phase)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
