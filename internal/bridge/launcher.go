// internal/bridge/launcher.go
package bridge

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/navigator"
	"github.com/tamzrod/zone-navigator/internal/status"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// PipeLauncher runs the navigator in-process and exposes its status
// events as a line stream over an io.Pipe. Production swaps this for the
// BLE process launcher; the bridge cannot tell the difference.
type PipeLauncher struct {
	// Config derives the run config for a scenario.
	Config func(zone.Scenario) navigator.Config

	// Ports supplies the hardware for one run. Called once per launch so
	// a simulator gets a fresh board each time.
	Ports func() navigator.Ports

	Log *zap.Logger
}

// Launch starts one navigator run. The returned stream carries one status
// line per event and ends when the run does.
func (l *PipeLauncher) Launch(ctx context.Context, s zone.Scenario) (io.ReadCloser, error) {
	pr, pw := io.Pipe()

	nav, err := navigator.New(l.Config(s), l.Ports(), l.Log, func(e status.Event) {
		// A closed pipe means the reader is gone; the run keeps going to
		// a safe halt and remaining lines are dropped.
		fmt.Fprintln(pw, status.Encode(e))
	})
	if err != nil {
		pw.Close()
		return nil, err
	}

	go func() {
		nav.Run(ctx)
		pw.Close()
	}()

	return pr, nil
}
