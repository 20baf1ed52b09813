package in

import (
	"context"

	"pti/internal/modules/planner/dto"
)

type Usecase interface {
	CreateDomain(ctx context.Context, input dto.CreateDomainInput) (dto.DomainOutput, error)
	UpdateDomain(ctx context.Context, input dto.UpdateDomainInput) (dto.DomainOutput, error)
	DeleteDomain(ctx context.Context, userID, domainID string) error
	ListDomains(ctx context.Context, userID string) ([]dto.DomainOutput, error)
	GetDomain(ctx context.Context, userID, domainID string) (dto.DomainOutput, error)
	AddTarget(ctx context.Context, input dto.AddTargetInput) (dto.TargetOutput, error)
	AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error)
	EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskOutput, error)
	DeleteTask(ctx context.Context, input dto.DeleteTaskInput) error
	CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error)
	Recompute(ctx context.Context, userID, domainID string) (dto.DomainOutput, error)
	ListCompletedTasks(ctx context.Context, userID string) ([]dto.CompletedTaskOutput, error)
}
