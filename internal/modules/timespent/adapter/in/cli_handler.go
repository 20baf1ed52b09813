package in

import (
	"context"

	"pti/internal/modules/timespent/dto"
	timespentin "pti/internal/modules/timespent/port/in"
)

type CLIHandler struct {
	usecase timespentin.Usecase
}

func NewCLIHandler(usecase timespentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot(ctx context.Context, input dto.SnapshotInput) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, input)
}
