package out

import (
	"context"

	"pti/internal/modules/planner/domain"
)

// PlannerStore is the hierarchical user -> domain -> target -> task store.
// Create methods allocate and return the record id.
type PlannerStore interface {
	CreateDomain(ctx context.Context, userID string, d domain.Domain) (string, error)
	UpdateDomain(ctx context.Context, userID string, d domain.Domain) error
	DeleteDomain(ctx context.Context, userID, domainID string) error
	GetDomain(ctx context.Context, userID, domainID string) (domain.Domain, error)
	ListDomains(ctx context.Context, userID string) ([]domain.Domain, error)
	CreateTarget(ctx context.Context, userID string, target domain.Target) (string, error)
	GetTarget(ctx context.Context, userID, targetID string) (domain.Target, error)
	CreateTask(ctx context.Context, userID string, task domain.Task) (string, error)
	GetTask(ctx context.Context, userID, taskID string) (domain.Task, error)
	UpdateTask(ctx context.Context, userID string, task domain.Task) error
	DeleteTask(ctx context.Context, userID, taskID string) error
	ListCompletedTasks(ctx context.Context, userID string) ([]domain.Task, error)
	SaveTargetTotals(ctx context.Context, userID string, target domain.Target) error
	SaveDomainTotals(ctx context.Context, userID string, d domain.Domain) error
}

// ActivityRecorder synthesizes the activity that accompanies a completion.
type ActivityRecorder interface {
	RecordCompletion(ctx context.Context, event domain.CompletionEvent) error
}
