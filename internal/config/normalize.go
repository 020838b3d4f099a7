// internal/config/normalize.go
package config

// Field defaults. Tunables observed to work on the deployed board; all of
// them can be overridden per installation.
const (
	DefaultCycleMs        = 30
	DefaultWindow         = 5
	DefaultDebounce       = 5
	DefaultWarmupCycles   = 40
	DefaultStopDistanceMM = 150
	DefaultRunBudgetMs    = 90_000
	DefaultBaseSpeed      = 200
	DefaultTurboSpeed     = 500
	DefaultPushAngle      = 250
	DefaultRangeMax       = 25
	DefaultQueueCapacity  = 4
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// Normalize applies post-validation defaulting.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	n := &cfg.Navigator

	if n.Calibration.RangeMax == 0 {
		n.Calibration.RangeMax = DefaultRangeMax
	}

	if n.Sampling.CycleMs == 0 {
		n.Sampling.CycleMs = DefaultCycleMs
	}
	if n.Sampling.Window == 0 {
		n.Sampling.Window = DefaultWindow
	}
	if n.Sampling.Debounce == 0 {
		n.Sampling.Debounce = DefaultDebounce
	}
	if n.Sampling.WarmupCycles == 0 {
		n.Sampling.WarmupCycles = DefaultWarmupCycles
	}

	if n.Safety.StopDistanceMM == 0 {
		n.Safety.StopDistanceMM = DefaultStopDistanceMM
	}
	if n.Safety.RunBudgetMs == 0 {
		n.Safety.RunBudgetMs = DefaultRunBudgetMs
	}

	if n.Drive.BaseSpeed == 0 {
		n.Drive.BaseSpeed = DefaultBaseSpeed
	}
	if n.Drive.TurboSpeed == 0 {
		n.Drive.TurboSpeed = DefaultTurboSpeed
	}
	if n.Drive.PushAngle == 0 {
		n.Drive.PushAngle = DefaultPushAngle
	}

	if cfg.Bridge.QueueCapacity == 0 {
		cfg.Bridge.QueueCapacity = DefaultQueueCapacity
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
