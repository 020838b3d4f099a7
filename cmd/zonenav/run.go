// cmd/zonenav/run.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/zone-navigator/internal/bridge"
	"github.com/tamzrod/zone-navigator/internal/config"
	"github.com/tamzrod/zone-navigator/internal/navigator"
	"github.com/tamzrod/zone-navigator/internal/observability"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// newRunCmd builds the bridge daemon: requests in on stdin, one line per
// request ("<case-id> <scenario>"), completion reports out on stdout as
// JSON lines. The upstream pub/sub subscriber and publisher processes
// attach to those two streams.
func newRunCmd() *cobra.Command {
	var useSim bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the command bridge daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			log := observability.NewLogger(cfg.Logging)
			defer log.Sync()

			if !useSim {
				return errors.New("no robot transport built in: run with --sim, or attach the BLE launcher")
			}

			metrics := observability.NewMetrics()
			launcher := simLauncher(cfg, log)
			sink := &bridge.WriterSink{W: os.Stdout}

			b, err := bridge.New(launcher, sink, log, bridge.Options{
				QueueCapacity:  cfg.Bridge.QueueCapacity,
				ReportProgress: cfg.Bridge.ReportProgress,
				Metrics:        metrics,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				err := b.Run(ctx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})

			g.Go(func() error {
				err := readRequests(ctx, os.Stdin, b, log)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})

			if cfg.Bridge.MetricsAddr != "" {
				srv := &http.Server{Addr: cfg.Bridge.MetricsAddr, Handler: metrics.Handler()}
				g.Go(func() error {
					log.Info("metrics listening", zap.String("addr", cfg.Bridge.MetricsAddr))
					if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-ctx.Done()
					shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
					defer cancel()
					return srv.Shutdown(shutCtx)
				})
			}

			log.Info("bridge daemon up")
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&useSim, "sim", true, "drive a simulated robot instead of real hardware")
	return cmd
}

// readRequests parses "<case-id> <scenario>" lines until ctx ends or the
// input closes. Scenario synonyms from the upstream case system are
// accepted; unknown lines are logged and skipped.
//
// Scanning happens on its own goroutine: a blocking Read must not pin
// shutdown, so cancellation returns immediately even while the input is
// quiet. The scan goroutine unblocks at the next line or EOF.
func readRequests(ctx context.Context, in io.Reader, b *bridge.Bridge, log *zap.Logger) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		var raw string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-scanErr:
			return err
		case raw = <-lines:
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		caseID, rawScenario, ok := strings.Cut(line, " ")
		if !ok {
			log.Warn("malformed request line, want '<case-id> <scenario>'", zap.String("line", line))
			continue
		}

		scenario, ok := zone.ParseScenario(rawScenario)
		if !ok {
			log.Warn("unknown scenario, ignoring", zap.String("raw", rawScenario))
			continue
		}

		if err := b.Submit(bridge.Request{CaseID: caseID, Scenario: scenario}); err != nil {
			log.Warn("request not accepted", zap.String("case_id", caseID), zap.Error(err))
		}
	}
}

// simLauncher wires the in-process pipe launcher to a fresh simulated
// board per run.
func simLauncher(cfg *config.Config, log *zap.Logger) *bridge.PipeLauncher {
	cycle := time.Duration(cfg.Navigator.Sampling.CycleMs) * time.Millisecond
	return &bridge.PipeLauncher{
		Config: func(s zone.Scenario) navigator.Config {
			return navigator.BuildConfig(cfg, s)
		},
		Ports: func() navigator.Ports {
			sim := navigator.NewSim(navigator.DefaultBoard(cycle))
			return navigator.Ports{Drive: sim, Color: sim, Range: sim, Indicator: sim}
		},
		Log: log,
	}
}

// loadConfig reads, validates, then normalizes; order matters.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}
