package dto

import (
	"time"

	"gazesim/internal/modules/tracking/domain"
)

type StartInput struct {
	// LengthSeconds overrides the configured session length when positive.
	LengthSeconds int
}

type StartOutput struct {
	SessionID string
	StartedAt time.Time
	Countdown string
}

type SnapshotOutput struct {
	SessionID string
	Phase     string
	Active    bool
	Remaining int
	Countdown string
	Points    int
}

// AttentionAreas is the wire form of the area percentages.
type AttentionAreas struct {
	Eyes    int `json:"eyes"`
	Mouth   int `json:"mouth"`
	Objects int `json:"objects"`
}

// SummaryPayload is the JSON body posted to the submission endpoint.
type SummaryPayload struct {
	Fixations      int            `json:"fixations"`
	Saccades       int            `json:"saccades"`
	PupilDilation  string         `json:"pupilDilation"`
	AttentionAreas AttentionAreas `json:"attentionAreas"`
}

type EndOutput struct {
	SessionID  string
	Phase      string
	Points     int
	Summary    SummaryPayload
	ResultsURL string
	Err        error
}

// FromSummary converts a summary into the submission wire form.
func FromSummary(summary domain.AttentionSummary) SummaryPayload {
	return SummaryPayload{
		Fixations:     summary.Fixations,
		Saccades:      summary.Saccades,
		PupilDilation: summary.DilationText(),
		AttentionAreas: AttentionAreas{
			Eyes:    summary.AttentionAreas.Eyes,
			Mouth:   summary.AttentionAreas.Mouth,
			Objects: summary.AttentionAreas.Objects,
		},
	}
}
