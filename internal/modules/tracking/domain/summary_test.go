package domain_test

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
	"time"

	"gazesim/internal/modules/tracking/domain"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func pointsN(n int, c domain.Canvas, rng *rand.Rand) []domain.SamplePoint {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]domain.SamplePoint, n)
	for i := range out {
		out[i] = c.RandomPoint(rng, at.Add(time.Duration(i)*time.Millisecond))
	}
	return out
}

func TestComputeSummaryCountsFollowPointVolume(t *testing.T) {
	t.Parallel()
	c := domain.Canvas{Width: 800, Height: 400}
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 4, 5, 9, 10, 47, 99, 100, 151} {
		s := domain.ComputeSummary(pointsN(n, c, rng), c, rng)
		if s.Fixations != n/10 {
			t.Fatalf("n=%d: fixations=%d want %d", n, s.Fixations, n/10)
		}
		if s.Saccades != n/5 {
			t.Fatalf("n=%d: saccades=%d want %d", n, s.Saccades, n/5)
		}
		total := s.AttentionAreas.Total()
		if n == 0 && total != 0 {
			t.Fatalf("empty session must report zero areas, got %+v", s.AttentionAreas)
		}
		if n > 0 && total != 100 {
			t.Fatalf("n=%d: areas sum to %d: %+v", n, total, s.AttentionAreas)
		}
	}
}

func TestClassifyPriorityAndRegions(t *testing.T) {
	t.Parallel()
	c := domain.Canvas{Width: 300, Height: 300}
	cases := []struct {
		x, y float64
		want domain.Area
	}{
		{120, 120, domain.AreaEyes},
		{10, 10, domain.AreaEyes},
		{160, 160, domain.AreaMouth},
		{200, 150, domain.AreaObjects},
		{250, 250, domain.AreaObjects},
		{149.9, 200, domain.AreaObjects},
	}
	for _, tc := range cases {
		got := domain.Classify(domain.SamplePoint{X: tc.x, Y: tc.y}, c)
		if got != tc.want {
			t.Fatalf("(%v,%v): got %s want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestPupilDilationRangeAndFormat(t *testing.T) {
	t.Parallel()
	draws := []float64{0, 0.05, 0.099, 0.1, 0.5, 0.95, 0.999999999}
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 500; i++ {
		draws = append(draws, rng.Float64())
	}
	for _, u := range draws {
		s := domain.ComputeSummary(nil, domain.Canvas{Width: 1, Height: 1}, constRand(u))
		if s.PupilDilation < 3.5 || s.PupilDilation >= 4.5 {
			t.Fatalf("u=%v: dilation %v out of range", u, s.PupilDilation)
		}
		text := s.DilationText()
		whole, frac, ok := strings.Cut(text, ".")
		if !ok || len(frac) != 1 || (whole != "3" && whole != "4") {
			t.Fatalf("u=%v: bad dilation text %q", u, text)
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			t.Fatalf("dilation text %q does not parse: %v", text, err)
		}
	}
	if got := domain.PupilDilation(0.999999999); got != 4.4 {
		t.Fatalf("top draw should truncate to 4.4, got %v", got)
	}
}

func TestPercentagesLargestRemainder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		counts [3]int
		want   [3]int
	}{
		{[3]int{0, 0, 0}, [3]int{0, 0, 0}},
		{[3]int{1, 1, 1}, [3]int{34, 33, 33}},
		{[3]int{2, 1, 0}, [3]int{67, 33, 0}},
		{[3]int{1, 2, 4}, [3]int{14, 29, 57}},
		{[3]int{0, 0, 5}, [3]int{0, 0, 100}},
		{[3]int{20, 13, 14}, [3]int{42, 28, 30}},
	}
	for _, tc := range cases {
		got := domain.Percentages(tc.counts)
		if got != tc.want {
			t.Fatalf("%v: got %v want %v", tc.counts, got, tc.want)
		}
	}
}

func TestSessionWithFortySevenPoints(t *testing.T) {
	t.Parallel()
	c := domain.Canvas{Width: 640, Height: 480}
	rng := rand.New(rand.NewPCG(47, 47))
	s := domain.NewSession()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.Begin("s-1", now, domain.DefaultLengthSeconds); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for _, p := range pointsN(47, c, rng) {
		if !s.Record(p) {
			t.Fatalf("record rejected while active")
		}
	}
	for i := 0; i < domain.DefaultLengthSeconds; i++ {
		s.Tick()
	}
	if s.Active || s.Phase != domain.PhaseSummarizing {
		t.Fatalf("session should be summarizing, got active=%v phase=%s", s.Active, s.Phase)
	}
	summary := domain.ComputeSummary(s.Points(), c, rng)
	if summary.Fixations != 4 || summary.Saccades != 9 {
		t.Fatalf("got fixations=%d saccades=%d", summary.Fixations, summary.Saccades)
	}
	if summary.AttentionAreas.Total() != 100 {
		t.Fatalf("areas should sum to 100: %+v", summary.AttentionAreas)
	}
}
