// internal/bridge/sink.go
package bridge

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"go.uber.org/zap"
)

// LogSink records completion reports in the structured log. Useful when
// no upstream case system is wired, and as the default for `drive`.
type LogSink struct {
	Log *zap.Logger
}

func (s *LogSink) Publish(_ context.Context, r Report) error {
	log := s.Log
	if log == nil {
		log = zap.L()
	}
	log.Info("completion report",
		zap.String("case_id", r.CaseID),
		zap.String("run_id", r.RunID),
		zap.String("scenario", r.Scenario.String()),
		zap.String("phase", string(r.Phase)),
		zap.String("message", r.Message),
		zap.String("board_position", r.BoardPosition),
	)
	return nil
}

// WriterSink emits one JSON record per report, one per line. This is the
// seam the cloud publisher plugs into; the CLI points it at stdout.
type WriterSink struct {
	W io.Writer

	mu sync.Mutex
}

func (s *WriterSink) Publish(_ context.Context, r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.W.Write(append(data, '\n'))
	return err
}
