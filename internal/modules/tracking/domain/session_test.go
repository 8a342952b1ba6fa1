package domain_test

import (
	"testing"
	"time"

	"gazesim/internal/modules/tracking/domain"
)

func TestCountdownSequence(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	if err := s.Begin("s-1", time.Now(), 30); err != nil {
		t.Fatalf("begin: %v", err)
	}
	seen := []string{domain.FormatCountdown(s.Remaining)}
	for {
		remaining, finished := s.Tick()
		seen = append(seen, domain.FormatCountdown(remaining))
		if finished {
			break
		}
	}
	if len(seen) != 31 || seen[0] != "00:30" || seen[1] != "00:29" || seen[29] != "00:01" || seen[30] != "00:00" {
		t.Fatalf("unexpected countdown: %v", seen)
	}
	if _, finished := s.Tick(); !finished || s.Remaining != 0 {
		t.Fatalf("countdown must not go past zero")
	}
}

func TestRecordAfterEndIsRejected(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	if s.Record(domain.SamplePoint{X: 1, Y: 1}) {
		t.Fatalf("idle session must not record")
	}
	_ = s.Begin("s-1", time.Now(), 1)
	s.Record(domain.SamplePoint{X: 1, Y: 1})
	s.Tick()
	if s.Record(domain.SamplePoint{X: 2, Y: 2}) {
		t.Fatalf("finished session must not record")
	}
	if s.PointCount() != 1 {
		t.Fatalf("expected 1 point, got %d", s.PointCount())
	}
}

func TestBeginResetsPreviousRun(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	_ = s.Begin("s-1", time.Now(), 1)
	s.Record(domain.SamplePoint{X: 1, Y: 1})
	if err := s.Begin("s-2", time.Now(), 1); err == nil {
		t.Fatalf("begin while active should fail")
	}
	s.Tick()
	s.Finish(nil)
	if s.Phase != domain.PhaseSubmitted {
		t.Fatalf("phase = %s", s.Phase)
	}
	if err := s.Begin("s-2", time.Now(), 30); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.PointCount() != 0 || s.ID != "s-2" || s.Remaining != 30 {
		t.Fatalf("restart did not reset: id=%s points=%d remaining=%d", s.ID, s.PointCount(), s.Remaining)
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	_ = s.Begin("s-1", time.Now(), 5)
	s.Record(domain.SamplePoint{X: 3, Y: 4})
	pts := s.Points()
	pts[0].X = 99
	if s.Points()[0].X != 3 {
		t.Fatalf("Points must not alias session storage")
	}
}

func TestRandomPointStaysInsideCanvas(t *testing.T) {
	t.Parallel()
	canvas := domain.Canvas{Width: 640, Height: 480}
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	for _, u := range []float64{0, 0.5, 0.999999} {
		p := canvas.RandomPoint(constRand(u), at)
		if p.X < 0 || p.X >= canvas.Width || p.Y < 0 || p.Y >= canvas.Height {
			t.Fatalf("u=%v: point %+v outside canvas", u, p)
		}
		if !p.Timestamp.Equal(at) {
			t.Fatalf("u=%v: timestamp %v, want %v", u, p.Timestamp, at)
		}
	}
}
