// internal/config/config.go
package config

type Config struct {
	Navigator NavigatorConfig `yaml:"navigator"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ---- NAVIGATOR ----

type NavigatorConfig struct {
	Calibration CalibrationConfig `yaml:"calibration"`
	Sampling    SamplingConfig    `yaml:"sampling"`
	Safety      SafetyConfig      `yaml:"safety"`
	Drive       DriveConfig       `yaml:"drive"`
}

// ---- CALIBRATION ----

// CalibrationConfig carries the per-color reflectance references measured
// on the deployed board. Recalibration is a config edit, not a rebuild.
type CalibrationConfig struct {
	Green     float64 `yaml:"green"`
	Yellow    float64 `yaml:"yellow"`
	Red       float64 `yaml:"red"`
	Tolerance float64 `yaml:"tolerance"`
	RangeMin  float64 `yaml:"range_min"`
	RangeMax  float64 `yaml:"range_max"`
}

// ---- SAMPLING ----

type SamplingConfig struct {
	CycleMs      int `yaml:"cycle_ms"`
	Window       int `yaml:"window"`
	Debounce     int `yaml:"debounce"`
	WarmupCycles int `yaml:"warmup_cycles"`
}

// ---- SAFETY ----

type SafetyConfig struct {
	StopDistanceMM int `yaml:"stop_distance_mm"`
	RunBudgetMs    int `yaml:"run_budget_ms"`
}

// ---- DRIVE ----

type DriveConfig struct {
	BaseSpeed  int `yaml:"base_speed"`  // deg/s
	TurboSpeed int `yaml:"turbo_speed"` // deg/s
	PushAngle  int `yaml:"push_angle"`  // final drive into the zone, deg
}

// ---- BRIDGE ----

type BridgeConfig struct {
	QueueCapacity  int    `yaml:"queue_capacity"`
	ReportProgress bool   `yaml:"report_progress"`
	MetricsAddr    string `yaml:"metrics_addr"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json

	// Optional rotating log file. Empty disables file logging.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}
