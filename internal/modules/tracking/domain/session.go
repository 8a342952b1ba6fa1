package domain

import (
	"fmt"
	"time"
)

const DefaultLengthSeconds = 30

type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSampling    Phase = "sampling"
	PhaseSummarizing Phase = "summarizing"
	PhaseSubmitted   Phase = "submitted"
	PhaseFailed      Phase = "failed"
)

// Session is the state of one tracking run. It is owned by a single loop
// goroutine; callers on other goroutines read copies.
type Session struct {
	ID        string
	Active    bool
	Phase     Phase
	StartedAt time.Time
	Remaining int
	points    []SamplePoint
}

func NewSession() *Session {
	return &Session{Phase: PhaseIdle}
}

// Begin resets the session for a new run. Points from a previous run are dropped.
func (s *Session) Begin(id string, now time.Time, lengthSeconds int) error {
	if s.Active {
		return fmt.Errorf("session %s is still active", s.ID)
	}
	if lengthSeconds <= 0 {
		return fmt.Errorf("session length must be positive, got %d", lengthSeconds)
	}
	s.ID = id
	s.Active = true
	s.Phase = PhaseSampling
	s.StartedAt = now
	s.Remaining = lengthSeconds
	s.points = nil
	return nil
}

// Record appends a point. Points offered after the session ended are rejected.
func (s *Session) Record(p SamplePoint) bool {
	if !s.Active {
		return false
	}
	s.points = append(s.points, p)
	return true
}

// Tick advances the countdown by one second and reports whether it hit zero.
// Reaching zero deactivates the session.
func (s *Session) Tick() (remaining int, finished bool) {
	if !s.Active {
		return s.Remaining, true
	}
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining == 0 {
		s.Active = false
		s.Phase = PhaseSummarizing
		return 0, true
	}
	return s.Remaining, false
}

// Abort stops an active session without producing a summary.
func (s *Session) Abort() {
	s.Active = false
	s.Phase = PhaseIdle
}

func (s *Session) Finish(err error) {
	if err != nil {
		s.Phase = PhaseFailed
		return
	}
	s.Phase = PhaseSubmitted
}

func (s *Session) PointCount() int {
	return len(s.points)
}

// Points returns a copy of the captured sequence in capture order.
func (s *Session) Points() []SamplePoint {
	out := make([]SamplePoint, len(s.points))
	copy(out, s.points)
	return out
}

// FormatCountdown renders remaining seconds as MM:SS. Sessions stay under a
// minute, so minutes are always 00.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
