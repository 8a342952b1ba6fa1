package domain_test

import (
	"math"
	"testing"
	"time"

	"gazesim/internal/modules/results/domain"
)

func TestSubmissionValidate(t *testing.T) {
	t.Parallel()
	base := domain.Submission{
		ID:            "sub-1",
		ReceivedAt:    time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Fixations:     4,
		Saccades:      9,
		PupilDilation: 3.9,
		Areas:         domain.Areas{Eyes: 30, Mouth: 10, Objects: 60},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("submission should be valid: %v", err)
	}

	empty := base
	empty.Areas = domain.Areas{}
	if err := empty.Validate(); err != nil {
		t.Fatalf("all-zero areas should be valid: %v", err)
	}
	drift := base
	drift.Areas = domain.Areas{Eyes: 34, Mouth: 33, Objects: 34}
	if err := drift.Validate(); err != nil {
		t.Fatalf("101 total should be tolerated: %v", err)
	}

	cases := map[string]func(*domain.Submission){
		"missing id":        func(s *domain.Submission) { s.ID = " " },
		"negative saccades": func(s *domain.Submission) { s.Saccades = -1 },
		"zero dilation":     func(s *domain.Submission) { s.PupilDilation = 0 },
		"nan dilation":      func(s *domain.Submission) { s.PupilDilation = math.NaN() },
		"inf dilation":      func(s *domain.Submission) { s.PupilDilation = math.Inf(1) },
		"percent over 100":  func(s *domain.Submission) { s.Areas = domain.Areas{Eyes: 120} },
		"sum far from 100":  func(s *domain.Submission) { s.Areas = domain.Areas{Eyes: 10, Mouth: 10, Objects: 10} },
	}
	for name, mutate := range cases {
		s := base
		mutate(&s)
		if err := s.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
