package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const SchemaVersion = 1

// percentDrift tolerates clients that round each area on its own.
const percentDrift = 2

type Areas struct {
	Eyes    int
	Mouth   int
	Objects int
}

func (a Areas) Total() int {
	return a.Eyes + a.Mouth + a.Objects
}

// Submission is one attention summary received from a simulator.
type Submission struct {
	ID            string
	ReceivedAt    time.Time
	Fixations     int
	Saccades      int
	PupilDilation float64
	Areas         Areas
	NotePath      string
}

func (s Submission) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if s.Fixations < 0 || s.Saccades < 0 {
		return fmt.Errorf("fixations and saccades must be non-negative")
	}
	if math.IsNaN(s.PupilDilation) || math.IsInf(s.PupilDilation, 0) {
		return fmt.Errorf("pupil dilation must be a finite number")
	}
	if s.PupilDilation <= 0 || s.PupilDilation > 10 {
		return fmt.Errorf("pupil dilation %.1f out of range", s.PupilDilation)
	}
	for name, v := range map[string]int{"eyes": s.Areas.Eyes, "mouth": s.Areas.Mouth, "objects": s.Areas.Objects} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s percentage %d out of range", name, v)
		}
	}
	total := s.Areas.Total()
	if total != 0 && (total < 100-percentDrift || total > 100+percentDrift) {
		return fmt.Errorf("attention areas sum to %d, want 100", total)
	}
	return nil
}
