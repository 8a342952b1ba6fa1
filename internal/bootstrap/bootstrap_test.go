package bootstrap_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gazesim/internal/bootstrap"
	trackingoutadapter "gazesim/internal/modules/tracking/adapter/out"
	"gazesim/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	ws := t.TempDir()
	return config.Config{
		WorkspacePath: ws,
		DBPath:        filepath.Join(ws, ".gazesim", "gazesim.db"),
		Server:        config.ServerConfig{Addr: "127.0.0.1:0", BaseURL: "http://127.0.0.1:0"},
		Session: config.SessionConfig{
			LengthSeconds: 3,
			Tick:          20 * time.Millisecond,
			MinDelay:      2 * time.Millisecond,
			MaxDelay:      6 * time.Millisecond,
			MarkerRadius:  5,
		},
		Canvas: config.CanvasConfig{Width: 800, Height: 400},
		Log:    config.LogConfig{Level: "error"},
	}
}

func TestHeadlessSessionEndToEnd(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()
	ln, err := app.Listen()
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	app.Config.Server.BaseURL = "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- app.Serve(ctx, ln) }()

	var out bytes.Buffer
	page, grid := bootstrap.ConsolePage(&out, app.Config.Canvas.Width, app.Config.Canvas.Height)
	tracking, ok := app.Tracking(page, trackingoutadapter.NewResultsNavigator(app.Config.Server.BaseURL, &out, false))
	if !ok {
		t.Fatalf("tracking should attach to a sized canvas")
	}
	if _, err := tracking.Start(ctx, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	end, err := tracking.Wait(waitCtx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if end.Err != nil || end.Phase != "submitted" || end.ResultsURL != config.ResultsPath {
		t.Fatalf("end = %+v", end)
	}
	if end.Points != grid.Markers() {
		t.Fatalf("points %d != markers %d", end.Points, grid.Markers())
	}

	latest, err := app.ResultsCLI.Show(context.Background(), "")
	if err != nil {
		t.Fatalf("show latest: %v", err)
	}
	if latest.GazeData.Fixations != end.Summary.Fixations || latest.NotePath == "" {
		t.Fatalf("stored submission = %+v, summary = %+v", latest, end.Summary)
	}
	text := out.String()
	if !strings.HasPrefix(text, "00:03\n00:02\n00:01\n00:00\n") || !strings.Contains(text, latest.ID) {
		t.Fatalf("console output:\n%s", text)
	}

	cancel()
	if err := <-served; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestTrackingDeclinesZeroCanvas(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()
	page, _ := bootstrap.ConsolePage(io.Discard, 0, 0)
	if _, ok := app.Tracking(page, nil); ok {
		t.Fatalf("zero canvas must not attach")
	}
}

func TestCloseReleasesSubmissionStore(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := app.ResultsCLI.List(context.Background(), 5); err != nil {
		t.Fatalf("list before close: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := app.ResultsCLI.List(context.Background(), 5); err == nil {
		t.Fatalf("list after close should fail")
	}
}
