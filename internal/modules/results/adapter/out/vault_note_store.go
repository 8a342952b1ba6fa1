package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gazesim/internal/modules/results/domain"
	resultsout "gazesim/internal/modules/results/port/out"
	apperrors "gazesim/internal/platform/errors"
	"gazesim/internal/platform/markdown"
)

type noteMeta struct {
	SchemaVersion int     `yaml:"schema_version"`
	ID            string  `yaml:"id"`
	ReceivedAt    string  `yaml:"received_at"`
	Fixations     int     `yaml:"fixations"`
	Saccades      int     `yaml:"saccades"`
	PupilDilation float64 `yaml:"pupil_dilation"`
	Eyes          int     `yaml:"attention_eyes"`
	Mouth         int     `yaml:"attention_mouth"`
	Objects       int     `yaml:"attention_objects"`
}

type VaultNoteStore struct {
	workspacePath string
}

func NewVaultNoteStore(workspacePath string) resultsout.NoteStore {
	return &VaultNoteStore{workspacePath: workspacePath}
}

func (s *VaultNoteStore) Save(_ context.Context, sub domain.Submission) (string, error) {
	at := sub.ReceivedAt.UTC()
	dir := filepath.Join(s.workspacePath, "sessions", at.Format("2006"), at.Format("01"), at.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session note dir: %w", err)
	}
	short := sub.ID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", at.Format("150405"), short))

	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            sub.ID,
		ReceivedAt:    at.Format("2006-01-02T15:04:05Z07:00"),
		Fixations:     sub.Fixations,
		Saccades:      sub.Saccades,
		PupilDilation: sub.PupilDilation,
		Eyes:          sub.Areas.Eyes,
		Mouth:         sub.Areas.Mouth,
		Objects:       sub.Areas.Objects,
	}
	body := fmt.Sprintf("# Gaze session %s\n\n- Fixations: %d\n- Saccades: %d\n- Pupil dilation: %.1f mm\n\n## Attention\n\n| Area | Share |\n| --- | --- |\n| Eyes | %d%% |\n| Mouth | %d%% |\n| Objects | %d%% |\n",
		short, sub.Fixations, sub.Saccades, sub.PupilDilation, sub.Areas.Eyes, sub.Areas.Mouth, sub.Areas.Objects)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

// Load returns the body of a note written by Save, checking that its
// frontmatter belongs to the expected submission.
func (s *VaultNoteStore) Load(_ context.Context, path, submissionID string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("read session note: %w", err)
	}
	meta := noteMeta{}
	body, err := markdown.Parse(string(content), &meta)
	if err != nil {
		return "", err
	}
	if meta.ID != submissionID {
		return "", fmt.Errorf("session note %s belongs to %q, not %q", path, meta.ID, submissionID)
	}
	return body, nil
}

func (s *VaultNoteStore) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session note: %w", err)
	}
	return nil
}
