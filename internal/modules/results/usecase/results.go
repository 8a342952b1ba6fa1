package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gazesim/internal/modules/results/domain"
	resultsdto "gazesim/internal/modules/results/dto"
	resultsin "gazesim/internal/modules/results/port/in"
	"gazesim/internal/modules/results/service"
	apperrors "gazesim/internal/platform/errors"
)

type Interactor struct {
	svc *service.ResultsService
}

func NewInteractor(svc *service.ResultsService) resultsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Submit(ctx context.Context, input resultsdto.SubmitInput) (resultsdto.SubmissionOutput, error) {
	dilation, err := strconv.ParseFloat(strings.TrimSpace(input.PupilDilation), 64)
	if err != nil {
		return resultsdto.SubmissionOutput{}, fmt.Errorf("%w: pupilDilation %q is not a decimal", apperrors.ErrInvalidInput, input.PupilDilation)
	}
	recorded, err := i.svc.Record(ctx, domain.Submission{
		Fixations:     input.Fixations,
		Saccades:      input.Saccades,
		PupilDilation: dilation,
		Areas: domain.Areas{
			Eyes:    input.AttentionAreas.Eyes,
			Mouth:   input.AttentionAreas.Mouth,
			Objects: input.AttentionAreas.Objects,
		},
	})
	if err != nil {
		return resultsdto.SubmissionOutput{}, err
	}
	return toOutput(recorded), nil
}

func (i *Interactor) Latest(ctx context.Context) (resultsdto.SubmissionOutput, error) {
	latest, err := i.svc.Latest(ctx)
	if err != nil {
		return resultsdto.SubmissionOutput{}, err
	}
	return toOutput(latest), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (resultsdto.SubmissionOutput, error) {
	found, err := i.svc.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return resultsdto.SubmissionOutput{}, err
	}
	return toOutput(found), nil
}

func (i *Interactor) List(ctx context.Context, input resultsdto.ListInput) ([]resultsdto.SubmissionOutput, error) {
	items, err := i.svc.List(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]resultsdto.SubmissionOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Note(ctx context.Context, id string) (resultsdto.NoteOutput, error) {
	sub, body, err := i.svc.Note(ctx, strings.TrimSpace(id))
	if err != nil {
		return resultsdto.NoteOutput{}, err
	}
	return resultsdto.NoteOutput{SubmissionID: sub.ID, Path: sub.NotePath, Body: body}, nil
}

func toOutput(s domain.Submission) resultsdto.SubmissionOutput {
	return resultsdto.SubmissionOutput{
		ID:         s.ID,
		ReceivedAt: s.ReceivedAt,
		NotePath:   s.NotePath,
		GazeData: resultsdto.GazeData{
			Fixations:     s.Fixations,
			Saccades:      s.Saccades,
			PupilDilation: s.PupilDilation,
			AttentionAreas: resultsdto.AttentionAreas{
				Eyes:    s.Areas.Eyes,
				Mouth:   s.Areas.Mouth,
				Objects: s.Areas.Objects,
			},
		},
	}
}
