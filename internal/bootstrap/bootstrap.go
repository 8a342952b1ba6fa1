package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	resultsinadapter "gazesim/internal/modules/results/adapter/in"
	resultsoutadapter "gazesim/internal/modules/results/adapter/out"
	resultsservice "gazesim/internal/modules/results/service"
	resultsusecase "gazesim/internal/modules/results/usecase"
	trackinginadapter "gazesim/internal/modules/tracking/adapter/in"
	trackingoutadapter "gazesim/internal/modules/tracking/adapter/out"
	trackingout "gazesim/internal/modules/tracking/port/out"
	"gazesim/internal/modules/tracking/service"
	trackingusecase "gazesim/internal/modules/tracking/usecase"
	"gazesim/internal/platform/clock"
	"gazesim/internal/platform/config"
	"gazesim/internal/platform/id"
	"gazesim/internal/platform/logging"
	"gazesim/internal/platform/random"
	uiapp "gazesim/internal/ui/app"
	trackingview "gazesim/internal/ui/views/tracking"
)

// Terminal cells used to render the canvas.
const (
	GridCols = 72
	GridRows = 18
)

const shutdownGrace = 5 * time.Second

type App struct {
	Config     config.Config
	Log        hclog.Logger
	ResultsCLI resultsinadapter.CLIHandler
	ResultsWeb *resultsinadapter.HTTPHandler

	closers []io.Closer
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// New wires the results side. Logs go to logOut, or stderr when nil.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	log := logging.New("gazesim", logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Output: logOut})

	store, err := resultsoutadapter.NewSQLiteSubmissionStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new submission store: %w", err)
	}
	resultsUC := resultsusecase.NewInteractor(resultsservice.NewResultsService(
		clock.SystemClock{},
		id.UUID{},
		store,
		resultsoutadapter.NewVaultNoteStore(cfg.WorkspacePath),
	))

	return &App{
		Config:     cfg,
		Log:        log,
		ResultsCLI: resultsinadapter.NewCLIHandler(resultsUC),
		ResultsWeb: resultsinadapter.NewHTTPHandler(resultsUC, log, resultsinadapter.NewMetrics()),
		closers:    []io.Closer{store},
	}, nil
}

// Tracking attaches a simulator to page. It reports false when the page has
// no usable drawing surface.
func (a *App) Tracking(page trackingout.Page, navigator trackingout.Navigator) (trackinginadapter.CLIHandler, bool) {
	s := a.Config.Session
	uc, ok := trackingusecase.Attach(service.Deps{
		Clock:  clock.SystemClock{},
		IDs:    id.UUID{},
		Random: random.System{},
		Timing: service.Timing{
			LengthSeconds: s.LengthSeconds,
			Tick:          s.Tick,
			MinDelay:      s.MinDelay,
			MaxDelay:      s.MaxDelay,
			MarkerRadius:  s.MarkerRadius,
		},
		Page:        page,
		Submitter:   trackingoutadapter.NewHTTPSubmitter(a.Config.Server.BaseURL, config.SubmitPath, s.SubmitTimeout),
		Navigator:   navigator,
		ResultsPath: config.ResultsPath,
		Logger:      a.Log,
	})
	if !ok {
		return trackinginadapter.CLIHandler{}, false
	}
	return trackinginadapter.NewCLIHandler(uc), true
}

// ConsolePage builds a headless page on out with a width x height canvas.
func ConsolePage(out io.Writer, width, height float64) (trackingout.Page, *trackingoutadapter.GridSurface) {
	grid := trackingoutadapter.NewGridSurface(width, height, GridCols, GridRows)
	console := trackingoutadapter.NewConsole(out)
	return trackingout.Page{
		Surface:  grid,
		Display:  console,
		Panel:    console,
		Trigger:  console,
		Notifier: console,
	}, grid
}

// Listen binds the configured server address.
func (a *App) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", a.Config.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", a.Config.Server.Addr, err)
	}
	return ln, nil
}

// Serve runs the results server on ln until ctx is done.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.ResultsWeb.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	a.Log.Info("results server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown results server: %w", err)
	}
	return nil
}

// ServeBackground starts the embedded server when the address is free. When
// another process already owns it, the simulator submits there instead.
func (a *App) ServeBackground(ctx context.Context) {
	ln, err := a.Listen()
	if err != nil {
		a.Log.Warn("embedded results server not started, using external endpoint",
			"base_url", a.Config.Server.BaseURL, "error", err)
		return
	}
	go func() {
		if err := a.Serve(ctx, ln); err != nil {
			a.Log.Error("results server", "error", err)
		}
	}()
}

// RunTUI owns the terminal; build app with a log writer that is not stderr.
func RunTUI(ctx context.Context, app *App) error {
	app.ServeBackground(ctx)

	grid := trackingoutadapter.NewGridSurface(app.Config.Canvas.Width, app.Config.Canvas.Height, GridCols, GridRows)
	bridge := trackingview.NewBridge(grid)
	defer bridge.Close()
	var port trackingview.TrackingPort
	if handler, ok := app.Tracking(trackingout.Page{
		Surface:  bridge,
		Display:  bridge,
		Panel:    bridge,
		Trigger:  bridge,
		Notifier: bridge,
	}, bridge); ok {
		port = handler
	}

	model := uiapp.NewModel(port, bridge, app.ResultsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
