package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	k8sclock "k8s.io/utils/clock"

	"gazesim/internal/modules/tracking/domain"
	trackingout "gazesim/internal/modules/tracking/port/out"
	"gazesim/internal/platform/clock"
	apperrors "gazesim/internal/platform/errors"
	"gazesim/internal/platform/logging"
	"gazesim/internal/platform/id"
	"gazesim/internal/platform/random"
)

// ErrorNotice is shown to the user when a submission fails.
const ErrorNotice = "An error occurred. Please try again."

type Timing struct {
	LengthSeconds int
	Tick          time.Duration
	MinDelay      time.Duration
	MaxDelay      time.Duration
	MarkerRadius  float64
}

func DefaultTiming() Timing {
	return Timing{
		LengthSeconds: domain.DefaultLengthSeconds,
		Tick:          time.Second,
		MinDelay:      100 * time.Millisecond,
		MaxDelay:      300 * time.Millisecond,
		MarkerRadius:  5,
	}
}

// Outcome is what a finished session produced.
type Outcome struct {
	SessionID string
	Phase     domain.Phase
	Points    int
	Summary   domain.AttentionSummary
	Location  string
	Err       error
}

type Deps struct {
	Clock       clock.Clock
	IDs         id.Generator
	Random      random.Source
	Timing      Timing
	Page        trackingout.Page
	Submitter   trackingout.Submitter
	Navigator   trackingout.Navigator
	ResultsPath string
	Logger      hclog.Logger
}

// Simulator runs fake tracking sessions against a page. One session is active
// at a time; its sampling and countdown loops share a single goroutine.
type Simulator struct {
	clock       clock.Clock
	ids         id.Generator
	rng         random.Source
	timing      Timing
	page        trackingout.Page
	canvas      domain.Canvas
	submitter   trackingout.Submitter
	navigator   trackingout.Navigator
	resultsPath string
	log         hclog.Logger

	mu      sync.Mutex
	session *domain.Session
	done    chan struct{}
	outcome Outcome
}

// NewSimulator binds to deps.Page. Page.Surface must be non-nil; the usecase
// checks that before attaching.
func NewSimulator(deps Deps) *Simulator {
	width, height := deps.Page.Surface.Size()
	page := deps.Page
	if page.Display == nil {
		page.Display = noopPage{}
	}
	if page.Panel == nil {
		page.Panel = noopPage{}
	}
	if page.Trigger == nil {
		page.Trigger = noopPage{}
	}
	if page.Notifier == nil {
		page.Notifier = noopPage{}
	}
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	timing := deps.Timing
	if timing.LengthSeconds <= 0 {
		timing = DefaultTiming()
	}
	return &Simulator{
		clock:       deps.Clock,
		ids:         deps.IDs,
		rng:         deps.Random,
		timing:      timing,
		page:        page,
		canvas:      domain.Canvas{Width: width, Height: height},
		submitter:   deps.Submitter,
		navigator:   deps.Navigator,
		resultsPath: deps.ResultsPath,
		log:         log.Named("simulator"),
		session:     domain.NewSession(),
	}
}

func (s *Simulator) Canvas() domain.Canvas {
	return s.canvas
}

// Start begins a session and returns a copy of its initial state. The loops
// stop when the countdown reaches zero or ctx is cancelled.
func (s *Simulator) Start(ctx context.Context, lengthSeconds int) (domain.Session, error) {
	if lengthSeconds <= 0 {
		lengthSeconds = s.timing.LengthSeconds
	}
	s.mu.Lock()
	if s.session.Active {
		s.mu.Unlock()
		return domain.Session{}, apperrors.ErrActiveSessionExists
	}
	if err := s.session.Begin(s.ids.New(), s.clock.Now(), lengthSeconds); err != nil {
		s.mu.Unlock()
		return domain.Session{}, err
	}
	done := make(chan struct{})
	s.done = done
	s.outcome = Outcome{SessionID: s.session.ID, Phase: domain.PhaseSampling}
	started := *s.session
	s.mu.Unlock()

	s.page.Surface.Clear()
	s.page.Panel.Hide()
	s.page.Trigger.SetEnabled(false)
	s.page.Display.ShowCountdown(domain.FormatCountdown(lengthSeconds))
	s.log.Debug("session started", "session_id", started.ID, "length_seconds", lengthSeconds)

	s.sample(started.ID)
	ticker := s.clock.NewTicker(s.timing.Tick)
	timer := s.clock.NewTimer(s.nextDelay())
	go s.run(ctx, started.ID, ticker, timer, done)
	return started, nil
}

func (s *Simulator) run(ctx context.Context, sessionID string, ticker k8sclock.Ticker, timer k8sclock.Timer, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			s.abort(sessionID, ctx.Err())
			return
		case <-timer.C():
			if !s.sample(sessionID) {
				continue
			}
			timer.Reset(s.nextDelay())
		case <-ticker.C():
			remaining, finished := s.tick(sessionID)
			s.page.Display.ShowCountdown(domain.FormatCountdown(remaining))
			if finished {
				timer.Stop()
				s.complete(ctx, sessionID)
				return
			}
		}
	}
}

func (s *Simulator) sample(sessionID string) bool {
	s.mu.Lock()
	if s.session.ID != sessionID {
		s.mu.Unlock()
		return false
	}
	point := s.canvas.RandomPoint(s.rng, s.clock.Now())
	recorded := s.session.Record(point)
	s.mu.Unlock()
	if recorded {
		s.page.Surface.DrawMarker(point.X, point.Y, s.timing.MarkerRadius)
	}
	return recorded
}

func (s *Simulator) tick(sessionID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.ID != sessionID {
		return 0, true
	}
	return s.session.Tick()
}

func (s *Simulator) nextDelay() time.Duration {
	s.mu.Lock()
	u := s.rng.Float64()
	s.mu.Unlock()
	span := s.timing.MaxDelay - s.timing.MinDelay
	return s.timing.MinDelay + time.Duration(u*float64(span))
}

func (s *Simulator) complete(ctx context.Context, sessionID string) {
	s.mu.Lock()
	points := s.session.Points()
	summary := domain.ComputeSummary(points, s.canvas, s.rng)
	s.mu.Unlock()

	s.page.Trigger.SetEnabled(true)
	s.page.Panel.Reveal()
	s.log.Info("session complete", "session_id", sessionID, "points", len(points),
		"fixations", summary.Fixations, "saccades", summary.Saccades)

	outcome := Outcome{SessionID: sessionID, Points: len(points), Summary: summary}
	if err := s.submitter.Submit(ctx, summary); err != nil {
		s.log.Error("submit summary", "session_id", sessionID, "error", err)
		s.page.Notifier.Alert(ErrorNotice)
		outcome.Err = err
	} else {
		outcome.Location = s.resultsPath
		if s.navigator != nil {
			if navErr := s.navigator.Navigate(ctx, s.resultsPath); navErr != nil {
				s.log.Warn("navigate to results", "location", s.resultsPath, "error", navErr)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.ID != sessionID {
		return
	}
	s.session.Finish(outcome.Err)
	outcome.Phase = s.session.Phase
	s.outcome = outcome
}

func (s *Simulator) abort(sessionID string, cause error) {
	s.mu.Lock()
	if s.session.ID == sessionID {
		s.session.Abort()
		s.outcome = Outcome{
			SessionID: sessionID,
			Phase:     s.session.Phase,
			Points:    s.session.PointCount(),
			Err:       cause,
		}
	}
	s.mu.Unlock()
	s.page.Trigger.SetEnabled(true)
	s.log.Debug("session cancelled", "session_id", sessionID, "error", cause)
}

// Snapshot returns a copy of the current session state.
func (s *Simulator) Snapshot() (domain.Session, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session, s.session.PointCount()
}

// Wait blocks until the most recently started session has finished.
func (s *Simulator) Wait(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return Outcome{}, apperrors.ErrNoActiveSession
	}
	select {
	case <-done:
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, nil
}

type noopPage struct{}

func (noopPage) ShowCountdown(string) {}
func (noopPage) Hide()                {}
func (noopPage) Reveal()              {}
func (noopPage) SetEnabled(bool)      {}
func (noopPage) Alert(string)         {}
