package usecase

import (
	"context"

	"gazesim/internal/modules/tracking/domain"
	trackingdto "gazesim/internal/modules/tracking/dto"
	trackingin "gazesim/internal/modules/tracking/port/in"
	"gazesim/internal/modules/tracking/service"
)

type Interactor struct {
	sim *service.Simulator
}

// Attach wires a simulator to its page. A page without a usable drawing
// surface is not an error: Attach reports false and nothing is wired.
func Attach(deps service.Deps) (trackingin.Usecase, bool) {
	if deps.Page.Surface == nil {
		return nil, false
	}
	width, height := deps.Page.Surface.Size()
	if !(domain.Canvas{Width: width, Height: height}).Usable() {
		return nil, false
	}
	return &Interactor{sim: service.NewSimulator(deps)}, true
}

func (i *Interactor) Start(ctx context.Context, input trackingdto.StartInput) (trackingdto.StartOutput, error) {
	started, err := i.sim.Start(ctx, input.LengthSeconds)
	if err != nil {
		return trackingdto.StartOutput{}, err
	}
	return trackingdto.StartOutput{
		SessionID: started.ID,
		StartedAt: started.StartedAt,
		Countdown: domain.FormatCountdown(started.Remaining),
	}, nil
}

func (i *Interactor) Snapshot(_ context.Context) trackingdto.SnapshotOutput {
	session, points := i.sim.Snapshot()
	return trackingdto.SnapshotOutput{
		SessionID: session.ID,
		Phase:     string(session.Phase),
		Active:    session.Active,
		Remaining: session.Remaining,
		Countdown: domain.FormatCountdown(session.Remaining),
		Points:    points,
	}
}

func (i *Interactor) Wait(ctx context.Context) (trackingdto.EndOutput, error) {
	outcome, err := i.sim.Wait(ctx)
	if err != nil {
		return trackingdto.EndOutput{}, err
	}
	return trackingdto.EndOutput{
		SessionID:  outcome.SessionID,
		Phase:      string(outcome.Phase),
		Points:     outcome.Points,
		Summary:    trackingdto.FromSummary(outcome.Summary),
		ResultsURL: outcome.Location,
		Err:        outcome.Err,
	}, nil
}
