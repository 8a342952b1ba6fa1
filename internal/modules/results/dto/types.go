package dto

import "time"

type AttentionAreas struct {
	Eyes    int `json:"eyes"`
	Mouth   int `json:"mouth"`
	Objects int `json:"objects"`
}

// SubmitInput is the body accepted by the submission endpoint.
type SubmitInput struct {
	Fixations      int            `json:"fixations"`
	Saccades       int            `json:"saccades"`
	PupilDilation  string         `json:"pupilDilation"`
	AttentionAreas AttentionAreas `json:"attentionAreas"`
}

type GazeData struct {
	Fixations      int            `json:"fixations"`
	Saccades       int            `json:"saccades"`
	PupilDilation  float64        `json:"pupil_dilation"`
	AttentionAreas AttentionAreas `json:"attention_areas"`
}

type SubmissionOutput struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	GazeData   GazeData  `json:"gaze_data"`
	NotePath   string    `json:"note_path,omitempty"`
}

type ListInput struct {
	Limit int
}

type NoteOutput struct {
	SubmissionID string
	Path         string
	Body         string
}
