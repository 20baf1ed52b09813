package out

import (
	"context"

	"pti/internal/modules/timespent/domain"
)

// CompletedTaskSource lists a user's completed tasks, dated or not.
type CompletedTaskSource interface {
	ListCompletedTasks(ctx context.Context, userID string) ([]domain.CompletedTask, error)
}
