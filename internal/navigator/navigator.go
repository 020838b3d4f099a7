// internal/navigator/navigator.go

// Package navigator implements the on-robot control loop: drive along the
// board, classify the stripe under the sensor, correct wrong-direction
// travel, brake for obstacles, and narrate progress as status events.
package navigator

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/classify"
	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// State is the control-loop phase.
type State int

const (
	Seeking State = iota
	Correcting
	Arrived
	Aborted
)

func (s State) String() string {
	switch s {
	case Seeking:
		return "SEEKING"
	case Correcting:
		return "CORRECTING"
	case Arrived:
		return "ARRIVED"
	case Aborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool { return s == Arrived || s == Aborted }

// Config is the immutable runtime configuration of one run.
// A new run gets a new Config; nothing here is ever mutated in place.
type Config struct {
	Scenario    zone.Scenario
	Calibration classify.Calibration

	CyclePeriod  time.Duration
	WindowSize   int
	Debounce     int
	WarmupCycles int

	StopDistanceMM int
	RunBudget      time.Duration

	BaseSpeed  int // deg/s
	TurboSpeed int // deg/s
	PushAngle  int // deg
}

// EmitFunc receives each status event as it is created, in order.
type EmitFunc func(status.Event)

// Navigator owns exactly one run. Single logical thread of control:
// Run is synchronous and cooperative, nothing here is safe for
// concurrent use.
type Navigator struct {
	cfg    Config
	ports  Ports
	log    *zap.Logger
	emitFn EmitFunc

	target  zone.Color
	profile zone.DriveProfile
	speed   int

	classifier *classify.Classifier
	debounce   *classify.Debouncer

	state         State
	cycle         int
	lastConfirmed zone.Color
	seen          map[zone.Color]bool
	startedAt     time.Time
	alertPhase    bool
	alertStarted  bool
}

// New builds a navigator for one run. The calibration separability
// invariant is enforced here as well as at config load, so the navigator
// refuses to start with ambiguous calibration even when embedded without
// the config package.
func New(cfg Config, ports Ports, log *zap.Logger, emit EmitFunc) (*Navigator, error) {
	if !cfg.Scenario.IsValid() {
		return nil, fmt.Errorf("navigator: unknown scenario %q", cfg.Scenario)
	}
	if err := cfg.Calibration.Validate(); err != nil {
		return nil, fmt.Errorf("navigator: refusing to start: %w", err)
	}
	if cfg.CyclePeriod <= 0 {
		return nil, errors.New("navigator: cycle period must be > 0")
	}
	if cfg.WindowSize < 1 {
		return nil, errors.New("navigator: window size must be >= 1")
	}
	if cfg.Debounce < 2 {
		return nil, errors.New("navigator: debounce must be >= 2")
	}
	if cfg.StopDistanceMM <= 0 {
		return nil, errors.New("navigator: stop distance must be > 0")
	}
	if cfg.RunBudget <= 0 {
		return nil, errors.New("navigator: run budget must be > 0")
	}
	if cfg.BaseSpeed <= 0 || cfg.TurboSpeed <= 0 {
		return nil, errors.New("navigator: drive speeds must be > 0")
	}
	if ports.Drive == nil || ports.Color == nil || ports.Range == nil {
		return nil, errors.New("navigator: drive, color and range ports are required")
	}
	if ports.Indicator == nil {
		ports.Indicator = nopIndicator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if emit == nil {
		emit = func(status.Event) {}
	}

	target, ok := zone.TargetColor(cfg.Scenario)
	if !ok {
		return nil, fmt.Errorf("navigator: no target color for scenario %q", cfg.Scenario)
	}

	profile := zone.Profile(cfg.Scenario)
	speed := cfg.BaseSpeed
	if profile.Turbo {
		speed = cfg.TurboSpeed
	}

	return &Navigator{
		cfg:        cfg,
		ports:      ports,
		log:        log.Named("navigator"),
		emitFn:     emit,
		target:     target,
		profile:    profile,
		speed:      speed,
		classifier: classify.NewClassifier(cfg.Calibration, cfg.WindowSize),
		debounce:   classify.NewDebouncer(cfg.Debounce),
		state:      Seeking,
		seen:       make(map[zone.Color]bool),
	}, nil
}

// State returns the current control-loop phase.
func (n *Navigator) State() State { return n.state }

// emit stamps and fans out one status event.
func (n *Navigator) emit(e status.Event) {
	e.At = time.Now()
	n.log.Debug("status", zap.String("line", status.Encode(e)))
	n.emitFn(e)
}
