package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gazesim/internal/modules/results/domain"
	"gazesim/internal/modules/results/service"
	apperrors "gazesim/internal/platform/errors"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

type fixedID struct{}

func (fixedID) New() string { return "sub-1" }

type memoryStore struct {
	rows      []domain.Submission
	lastList  int
	insertErr error
}

func (m *memoryStore) Insert(_ context.Context, sub domain.Submission) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, sub)
	return nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Latest(context.Context) (domain.Submission, error) {
	if len(m.rows) == 0 {
		return domain.Submission{}, apperrors.ErrNotFound
	}
	return m.rows[len(m.rows)-1], nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (domain.Submission, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Submission{}, apperrors.ErrNotFound
}

func (m *memoryStore) List(_ context.Context, limit int) ([]domain.Submission, error) {
	m.lastList = limit
	return m.rows, nil
}

type memoryNotes struct {
	saved map[string]string
	err   error
}

func (m *memoryNotes) Save(_ context.Context, sub domain.Submission) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	path := "sessions/" + sub.ID + ".md"
	m.saved[path] = "body of " + sub.ID
	return path, nil
}

func (m *memoryNotes) Remove(_ context.Context, path string) error {
	delete(m.saved, path)
	return nil
}

func (m *memoryNotes) Load(_ context.Context, path, _ string) (string, error) {
	body, ok := m.saved[path]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return body, nil
}

var received = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func valid() domain.Submission {
	return domain.Submission{
		Fixations:     4,
		Saccades:      9,
		PupilDilation: 3.7,
		Areas:         domain.Areas{Eyes: 25, Mouth: 10, Objects: 65},
	}
}

func TestRecordStampsPersistsAndWritesNote(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	notes := &memoryNotes{saved: map[string]string{}}
	svc := service.NewResultsService(fixedClock{at: received}, fixedID{}, store, notes)

	got, err := svc.Record(context.Background(), valid())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.ID != "sub-1" || !got.ReceivedAt.Equal(received) || got.NotePath != "sessions/sub-1.md" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(store.rows) != 1 || store.rows[0].NotePath != got.NotePath {
		t.Fatalf("row not persisted with note path: %+v", store.rows)
	}

	sub, body, err := svc.Note(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("note: %v", err)
	}
	if sub.ID != "sub-1" || body != "body of sub-1" {
		t.Fatalf("note = %q for %s", body, sub.ID)
	}
}

func TestRecordRejectsInvalidSubmission(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewResultsService(fixedClock{at: received}, fixedID{}, store, &memoryNotes{saved: map[string]string{}})
	bad := valid()
	bad.Areas.Objects = 10
	if _, err := svc.Record(context.Background(), bad); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("invalid submission was stored")
	}
}

func TestRecordStopsWhenNoteFails(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	boom := errors.New("disk full")
	svc := service.NewResultsService(fixedClock{at: received}, fixedID{}, store, &memoryNotes{err: boom})
	if _, err := svc.Record(context.Background(), valid()); !errors.Is(err, boom) {
		t.Fatalf("expected note error, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("row stored despite note failure")
	}
}

func TestRecordRemovesNoteWhenInsertFails(t *testing.T) {
	t.Parallel()
	boom := errors.New("constraint failed")
	notes := &memoryNotes{saved: map[string]string{}}
	svc := service.NewResultsService(fixedClock{at: received}, fixedID{}, &memoryStore{insertErr: boom}, notes)
	if _, err := svc.Record(context.Background(), valid()); !errors.Is(err, boom) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if len(notes.saved) != 0 {
		t.Fatalf("note left behind after failed insert: %v", notes.saved)
	}
}

func TestLookupsAndDefaults(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewResultsService(fixedClock{at: received}, fixedID{}, store, nil)

	if _, err := svc.Latest(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("latest on empty store: %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty id: %v", err)
	}
	if _, err := svc.List(context.Background(), 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastList != 20 {
		t.Fatalf("default limit = %d", store.lastList)
	}

	if _, err := svc.Record(context.Background(), valid()); err != nil {
		t.Fatalf("record without notes: %v", err)
	}
	if _, _, err := svc.Note(context.Background(), "sub-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("note without store: %v", err)
	}
}
