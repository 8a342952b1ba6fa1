package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"gazesim/internal/bootstrap"
	trackingoutadapter "gazesim/internal/modules/tracking/adapter/out"
	"gazesim/internal/platform/config"
	apperrors "gazesim/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspace string

	root := &cobra.Command{
		Use:           "gazesim",
		Short:         "Simulated eye-tracking sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workspace, "workspace", ".", "workspace directory for results and notes")

	root.AddCommand(newTUICmd(&workspace))
	root.AddCommand(newRunCmd(&workspace))
	root.AddCommand(newServeCmd(&workspace))
	root.AddCommand(newResultsCmd(&workspace))
	return root
}

func loadApp(workspace string) (*bootstrap.App, error) {
	cfg, err := config.New(workspace)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, nil)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTUICmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(*workspace)
			if err != nil {
				return err
			}
			logPath := filepath.Join(filepath.Dir(cfg.DBPath), "gazesim.log")
			if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer logFile.Close()

			app, err := bootstrap.New(cfg, logFile)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, stop := signalContext()
			defer stop()
			return bootstrap.RunTUI(ctx, app)
		},
	}
}

func newRunCmd(workspace *string) *cobra.Command {
	var seconds int
	var canvas string
	var openBrowser, embedded bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one session headless and print the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspace)
			if err != nil {
				return err
			}
			defer app.Close()
			width, height := app.Config.Canvas.Width, app.Config.Canvas.Height
			if canvas != "" {
				if width, height, err = parseCanvas(canvas); err != nil {
					return err
				}
			}
			if seconds < 0 || seconds >= 60 {
				return fmt.Errorf("--seconds must be in 1..59: %w", apperrors.ErrInvalidInput)
			}

			ctx, stop := signalContext()
			defer stop()
			if embedded {
				app.ServeBackground(ctx)
			}

			out := cmd.OutOrStdout()
			page, grid := bootstrap.ConsolePage(out, width, height)
			navigator := trackingoutadapter.NewResultsNavigator(app.Config.Server.BaseURL, out, openBrowser)
			tracking, ok := app.Tracking(page, navigator)
			if !ok {
				return nil
			}
			if _, err := tracking.Start(ctx, seconds); err != nil {
				return err
			}
			end, err := tracking.Wait(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintln(out, grid.String())
			_, _ = fmt.Fprintf(out, "session %s: %d points, phase %s\n", end.SessionID, end.Points, end.Phase)
			s := end.Summary
			_, _ = fmt.Fprintf(out, "fixations=%d saccades=%d pupil=%s eyes=%d%% mouth=%d%% objects=%d%%\n",
				s.Fixations, s.Saccades, s.PupilDilation,
				s.AttentionAreas.Eyes, s.AttentionAreas.Mouth, s.AttentionAreas.Objects)
			if end.Err != nil {
				return fmt.Errorf("session %s: %w", end.SessionID, end.Err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&seconds, "seconds", 0, "session length in seconds (default from config)")
	cmd.Flags().StringVar(&canvas, "canvas", "", "canvas size WxH (default from config)")
	cmd.Flags().BoolVar(&openBrowser, "open", false, "open the results location in a browser")
	cmd.Flags().BoolVar(&embedded, "embedded", true, "serve the results endpoint in-process when the address is free")
	return cmd
}

func parseCanvas(value string) (float64, float64, error) {
	w, h, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return 0, 0, fmt.Errorf("--canvas %q: want WxH: %w", value, apperrors.ErrInvalidInput)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("--canvas width: %w", apperrors.ErrInvalidInput)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("--canvas height: %w", apperrors.ErrInvalidInput)
	}
	return width, height, nil
}

func newServeCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the submission endpoint and results location",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*workspace)
			if err != nil {
				return err
			}
			defer app.Close()
			ln, err := app.Listen()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			return app.Serve(ctx, ln)
		},
	}
}

func newResultsCmd(workspace *string) *cobra.Command {
	results := &cobra.Command{Use: "results", Short: "Inspect submitted summaries"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspace)
			if err != nil {
				return err
			}
			defer app.Close()
			subs, err := app.ResultsCLI.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no submissions")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Received", "Fixations", "Saccades", "Pupil", "Eyes %", "Mouth %", "Objects %"})
			for _, s := range subs {
				g := s.GazeData
				t.AppendRow(table.Row{
					s.ID, s.ReceivedAt.Local().Format("2006-01-02 15:04:05"),
					g.Fixations, g.Saccades, fmt.Sprintf("%.1f", g.PupilDilation),
					g.AttentionAreas.Eyes, g.AttentionAreas.Mouth, g.AttentionAreas.Objects,
				})
			}
			t.Render()
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum rows")

	var id string
	var withNote bool
	show := &cobra.Command{
		Use:   "show [--id <id>]",
		Short: "Show one submission (latest by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspace)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.ResultsCLI.Show(cmd.Context(), strings.TrimSpace(id))
			if err != nil {
				return err
			}
			g := s.GazeData
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"id: %s\nreceived: %s\nfixations: %d\nsaccades: %d\npupil: %.1f\neyes: %d%%\nmouth: %d%%\nobjects: %d%%\nnote: %s\n",
				s.ID, s.ReceivedAt.Format("2006-01-02T15:04:05Z07:00"), g.Fixations, g.Saccades, g.PupilDilation,
				g.AttentionAreas.Eyes, g.AttentionAreas.Mouth, g.AttentionAreas.Objects, s.NotePath)
			if !withNote {
				return nil
			}
			note, err := app.ResultsCLI.Note(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\n"+note.Body)
			return nil
		},
	}
	show.Flags().StringVar(&id, "id", "", "submission id")
	show.Flags().BoolVar(&withNote, "note", false, "print the session note body")

	results.AddCommand(list, show)
	return results
}
