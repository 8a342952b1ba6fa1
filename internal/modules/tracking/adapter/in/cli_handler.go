package in

import (
	"context"

	trackingdto "gazesim/internal/modules/tracking/dto"
	trackingin "gazesim/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.Usecase
}

func NewCLIHandler(usecase trackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, lengthSeconds int) (trackingdto.StartOutput, error) {
	return h.usecase.Start(ctx, trackingdto.StartInput{LengthSeconds: lengthSeconds})
}

func (h CLIHandler) Snapshot(ctx context.Context) trackingdto.SnapshotOutput {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Wait(ctx context.Context) (trackingdto.EndOutput, error) {
	return h.usecase.Wait(ctx)
}
