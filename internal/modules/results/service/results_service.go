package service

import (
	"context"
	"errors"
	"fmt"

	"gazesim/internal/modules/results/domain"
	resultsout "gazesim/internal/modules/results/port/out"
	"gazesim/internal/platform/clock"
	apperrors "gazesim/internal/platform/errors"
	"gazesim/internal/platform/id"
)

const defaultListLimit = 20

type ResultsService struct {
	clock clock.Passive
	idGen id.Generator
	store resultsout.SubmissionStore
	notes resultsout.NoteStore
}

func NewResultsService(clock clock.Passive, idGen id.Generator, store resultsout.SubmissionStore, notes resultsout.NoteStore) *ResultsService {
	return &ResultsService{clock: clock, idGen: idGen, store: store, notes: notes}
}

// Record stamps, validates and persists a submission. The note is written
// first so the stored row can point at it, and removed again if the row
// cannot be stored.
func (s *ResultsService) Record(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	submission.ID = s.idGen.New()
	submission.ReceivedAt = s.clock.Now()
	if err := submission.Validate(); err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if s.notes != nil {
		path, err := s.notes.Save(ctx, submission)
		if err != nil {
			return domain.Submission{}, err
		}
		submission.NotePath = path
	}
	if err := s.store.Insert(ctx, submission); err != nil {
		if submission.NotePath != "" {
			if rmErr := s.notes.Remove(ctx, submission.NotePath); rmErr != nil {
				return domain.Submission{}, errors.Join(err, rmErr)
			}
		}
		return domain.Submission{}, err
	}
	return submission, nil
}

func (s *ResultsService) Latest(ctx context.Context) (domain.Submission, error) {
	return s.store.Latest(ctx)
}

func (s *ResultsService) Get(ctx context.Context, id string) (domain.Submission, error) {
	if id == "" {
		return domain.Submission{}, fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	return s.store.FindByID(ctx, id)
}

func (s *ResultsService) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.store.List(ctx, limit)
}

// Note returns the markdown body recorded for a submission.
func (s *ResultsService) Note(ctx context.Context, id string) (domain.Submission, string, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return domain.Submission{}, "", err
	}
	if s.notes == nil || sub.NotePath == "" {
		return sub, "", apperrors.ErrNotFound
	}
	body, err := s.notes.Load(ctx, sub.NotePath, sub.ID)
	if err != nil {
		return domain.Submission{}, "", err
	}
	return sub, body, nil
}
