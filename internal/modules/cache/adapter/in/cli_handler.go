package in

import (
	"context"

	cachein "pti/internal/modules/cache/port/in"
)

type CLIHandler struct {
	usecase cachein.Usecase
}

func NewCLIHandler(usecase cachein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Clear(ctx context.Context, userID string) error {
	return h.usecase.Clear(ctx, userID)
}

func (h CLIHandler) IsFreshForToday(ctx context.Context, userID string) bool {
	return h.usecase.IsFreshForToday(ctx, userID)
}
