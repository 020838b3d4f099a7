// internal/observability/logger.go

// Package observability builds the process-wide logger and the bridge's
// prometheus metrics from configuration.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tamzrod/zone-navigator/internal/config"
)

// NewLogger builds a zap logger from the logging config: console or JSON
// encoding on stdout, plus an optional JSON core on a rotating file.
// An unparseable level falls back to info rather than failing the start.
func NewLogger(cfg config.LoggingConfig) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEnc zapcore.Encoder
	if cfg.Format == "json" {
		consoleEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(devCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), level),
	}

	if cfg.File != "" {
		// The file core is always JSON; rotation is lumberjack's job.
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...))
}
