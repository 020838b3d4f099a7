// cmd/zonenav/drive.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/navigator"
	"github.com/tamzrod/zone-navigator/internal/observability"
	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// newDriveCmd runs a single navigator run from the shell, status lines on
// stdout. Exit code 0 on arrival, 1 otherwise.
func newDriveCmd() *cobra.Command {
	var (
		rawScenario string
		startMM     int
	)

	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Execute one simulated navigator run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			scenario, ok := zone.ParseScenario(rawScenario)
			if !ok {
				return fmt.Errorf("unknown scenario %q", rawScenario)
			}

			log := observability.NewLogger(cfg.Logging)
			defer log.Sync()

			cycle := time.Duration(cfg.Navigator.Sampling.CycleMs) * time.Millisecond
			board := navigator.DefaultBoard(cycle)
			board.StartMM = startMM
			sim := navigator.NewSim(board)

			nav, err := navigator.New(
				navigator.BuildConfig(cfg, scenario),
				navigator.Ports{Drive: sim, Color: sim, Range: sim, Indicator: sim},
				log,
				func(e status.Event) { fmt.Println(status.Encode(e)) },
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			state := nav.Run(ctx)
			log.Info("run ended",
				zap.String("state", state.String()),
				zap.Int("position_mm", sim.PositionMM()),
			)

			if state != navigator.Arrived {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rawScenario, "scenario", "s", "RECYCLING_OK", "scenario to execute")
	cmd.Flags().IntVar(&startMM, "start-mm", 0, "start position on the simulated board")
	return cmd
}
