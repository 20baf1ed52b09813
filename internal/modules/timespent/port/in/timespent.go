package in

import (
	"context"

	"pti/internal/modules/timespent/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context, input dto.SnapshotInput) (dto.SnapshotOutput, error)
}
