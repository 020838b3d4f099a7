// internal/bridge/bridge.go

// Package bridge translates externally supplied scenario requests into
// navigator runs and the navigator's status-line stream into completion
// reports for the external sink. One robot, one run at a time.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// Phase tags a completion report.
type Phase string

const (
	PhaseCompleted  Phase = "COMPLETED"
	PhaseError      Phase = "ERROR"
	PhaseInProgress Phase = "IN_PROGRESS"
)

// Request is one externally supplied run selection.
type Request struct {
	CaseID   string
	Scenario zone.Scenario
}

// Report is the single outbound record per run.
type Report struct {
	CaseID        string        `json:"case_id"`
	RunID         string        `json:"run_id"`
	Scenario      zone.Scenario `json:"scenario"`
	Phase         Phase         `json:"phase"`
	Message       string        `json:"message"`
	BoardPosition string        `json:"board_position,omitempty"`
}

// Sink receives completion reports. Retry policy belongs to the sink;
// the bridge publishes each terminal report exactly once.
type Sink interface {
	Publish(ctx context.Context, r Report) error
}

// Launcher starts one navigator run and exposes its output as a line
// stream. It is the seam for the out-of-scope transport (BLE process
// launch in production, an in-process pipe in the simulator).
type Launcher interface {
	Launch(ctx context.Context, s zone.Scenario) (io.ReadCloser, error)
}

// Metrics is the bridge's observability hook. Implementations must be
// safe for use from the worker goroutine. A nil Metrics disables metrics.
type Metrics interface {
	RunStarted(scenario string)
	RunFinished(phase string, seconds float64)
	QueueDepth(n int)
	Correction()
	ObstacleAbort()
}

// ErrQueueFull is returned when a request arrives while the queue is at
// capacity. The robot has one set of actuators; requests are queued,
// never interleaved, and the queue is bounded on purpose.
var ErrQueueFull = errors.New("bridge: request queue full")

// ErrClosed is returned by Submit once shutdown has begun. A request
// accepted into the queue is guaranteed a report; rejecting late
// submissions keeps that guarantee honest.
var ErrClosed = errors.New("bridge: shutting down")

// Options tunes one bridge instance.
type Options struct {
	QueueCapacity  int
	ReportProgress bool
	Metrics        Metrics
}

// Bridge owns the request queue and the single worker.
type Bridge struct {
	queue          chan Request
	launcher       Launcher
	sink           Sink
	log            *zap.Logger
	metrics        Metrics
	reportProgress bool

	// mu orders Submit against the shutdown drain: closed flips before
	// the drain runs, so no request can slip into the queue unreported.
	mu     sync.Mutex
	closed bool
}

// New builds a bridge. launcher and sink are required.
func New(launcher Launcher, sink Sink, log *zap.Logger, opts Options) (*Bridge, error) {
	if launcher == nil {
		return nil, errors.New("bridge: launcher required")
	}
	if sink == nil {
		return nil, errors.New("bridge: sink required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	capacity := opts.QueueCapacity
	if capacity < 1 {
		capacity = 1
	}

	return &Bridge{
		queue:          make(chan Request, capacity),
		launcher:       launcher,
		sink:           sink,
		log:            log.Named("bridge"),
		metrics:        opts.Metrics,
		reportProgress: opts.ReportProgress,
	}, nil
}

// Submit enqueues one request. Non-blocking: a full queue rejects with
// ErrQueueFull and a shut-down bridge with ErrClosed rather than
// stalling the caller or dropping the request.
func (b *Bridge) Submit(req Request) error {
	if !req.Scenario.IsValid() {
		return fmt.Errorf("bridge: unknown scenario %q", req.Scenario)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	select {
	case b.queue <- req:
		if b.metrics != nil {
			b.metrics.QueueDepth(len(b.queue))
		}
		b.log.Info("request accepted",
			zap.String("case_id", req.CaseID),
			zap.String("scenario", req.Scenario.String()),
		)
		return nil
	default:
		b.log.Warn("request rejected, queue full", zap.String("case_id", req.CaseID))
		return ErrQueueFull
	}
}

// Run processes requests until ctx ends. Exactly one run is active at a
// time. On shutdown, requests still queued get an ERROR report so every
// accepted request yields exactly one outcome.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			b.closed = true
			b.mu.Unlock()
			b.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case req := <-b.queue:
			if b.metrics != nil {
				b.metrics.QueueDepth(len(b.queue))
			}
			b.handle(ctx, req)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, req Request) {
	runID := uuid.NewString()
	log := b.log.With(
		zap.String("case_id", req.CaseID),
		zap.String("run_id", runID),
		zap.String("scenario", req.Scenario.String()),
	)
	log.Info("starting run")

	if b.metrics != nil {
		b.metrics.RunStarted(req.Scenario.String())
	}
	started := time.Now()

	stream, err := b.launcher.Launch(ctx, req.Scenario)
	if err != nil {
		log.Error("navigator launch failed", zap.Error(err))
		b.publish(ctx, Report{
			CaseID:   req.CaseID,
			RunID:    runID,
			Scenario: req.Scenario,
			Phase:    PhaseError,
			Message:  "failed to start navigator: " + err.Error(),
		})
		if b.metrics != nil {
			b.metrics.RunFinished(string(PhaseError), time.Since(started).Seconds())
		}
		return
	}
	defer stream.Close()

	progressed := false
	out := Interpret(stream, func(e status.Event) {
		log.Debug("status event", zap.String("line", status.Encode(e)))

		switch e.Kind {
		case status.TargetColor:
			if b.reportProgress && !progressed {
				progressed = true
				b.publish(ctx, Report{
					CaseID:   req.CaseID,
					RunID:    runID,
					Scenario: req.Scenario,
					Phase:    PhaseInProgress,
					Message:  "Seeking " + e.Color.String() + " zone",
				})
			}
		case status.WrongWay:
			if b.metrics != nil {
				b.metrics.Correction()
			}
		case status.AbortObstacle:
			if b.metrics != nil {
				b.metrics.ObstacleAbort()
			}
		}
	})

	b.publish(ctx, Report{
		CaseID:        req.CaseID,
		RunID:         runID,
		Scenario:      req.Scenario,
		Phase:         out.Phase,
		Message:       out.Message,
		BoardPosition: out.BoardPosition,
	})
	if b.metrics != nil {
		b.metrics.RunFinished(string(out.Phase), time.Since(started).Seconds())
	}
	log.Info("run finished",
		zap.String("phase", string(out.Phase)),
		zap.String("board_position", out.BoardPosition),
	)
}

// drain reports every queued-but-unstarted request as ERROR.
func (b *Bridge) drain(ctx context.Context) {
	for {
		select {
		case req := <-b.queue:
			b.publish(ctx, Report{
				CaseID:   req.CaseID,
				RunID:    uuid.NewString(),
				Scenario: req.Scenario,
				Phase:    PhaseError,
				Message:  "bridge shutting down before the run started",
			})
		default:
			return
		}
	}
}

// publish hands one report to the sink. Publish failures are logged, not
// retried: retry policy is the sink's.
func (b *Bridge) publish(ctx context.Context, r Report) {
	if err := b.sink.Publish(context.WithoutCancel(ctx), r); err != nil {
		b.log.Error("report publish failed",
			zap.String("case_id", r.CaseID),
			zap.String("phase", string(r.Phase)),
			zap.Error(err),
		)
	}
}
