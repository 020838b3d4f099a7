// cmd/zonenav/run_test.go
package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tamzrod/zone-navigator/internal/bridge"
	"github.com/tamzrod/zone-navigator/internal/zone"
)

// stubLauncher replays a fixed successful status stream per launch.
type stubLauncher struct{}

func (stubLauncher) Launch(context.Context, zone.Scenario) (io.ReadCloser, error) {
	stream := "STATUS:START scenario=CONTAMINATED\n" +
		"STATUS:TARGET_COLOR=RED\n" +
		"STATUS:RED_REACHED\n" +
		"STATUS:ZONE=CONTAMINATED\n" +
		"STATUS:DONE\n"
	return io.NopCloser(strings.NewReader(stream)), nil
}

type reportChan struct{ ch chan bridge.Report }

func (s *reportChan) Publish(_ context.Context, r bridge.Report) error {
	s.ch <- r
	return nil
}

func TestReadRequests_StopsOnContextCancel(t *testing.T) {
	// stdin that never yields a line: shutdown must not wait for it
	pr, pw := io.Pipe()
	defer pw.Close()

	b, err := bridge.New(stubLauncher{}, &reportChan{ch: make(chan bridge.Report, 1)}, nil, bridge.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- readRequests(ctx, pr, b, zap.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("readRequests did not return after cancellation")
	}
}

func TestReadRequests_SubmitsParsedLines(t *testing.T) {
	sink := &reportChan{ch: make(chan bridge.Report, 4)}
	b, err := bridge.New(stubLauncher{}, sink, nil, bridge.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		b.Run(ctx)
	}()

	// one malformed line, one unknown scenario, one valid synonym
	in := strings.NewReader("garbage\ncase-0 ESCALATE\ncase-7 landfill\n")
	require.NoError(t, readRequests(context.Background(), in, b, zap.NewNop()))

	select {
	case r := <-sink.ch:
		require.Equal(t, "case-7", r.CaseID)
		require.Equal(t, zone.Contaminated, r.Scenario)
		require.Equal(t, bridge.PhaseCompleted, r.Phase)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the completion report")
	}

	cancel()
	<-workerDone
}
