package in

import (
	"context"

	"gazesim/internal/modules/tracking/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Snapshot(ctx context.Context) dto.SnapshotOutput
	Wait(ctx context.Context) (dto.EndOutput, error)
}
