package in

import (
	"context"

	"pti/internal/modules/planner/dto"
	plannerin "pti/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddDomain(ctx context.Context, input dto.CreateDomainInput) (dto.DomainOutput, error) {
	return h.usecase.CreateDomain(ctx, input)
}

func (h CLIHandler) EditDomain(ctx context.Context, input dto.UpdateDomainInput) (dto.DomainOutput, error) {
	return h.usecase.UpdateDomain(ctx, input)
}

func (h CLIHandler) RemoveDomain(ctx context.Context, userID, domainID string) error {
	return h.usecase.DeleteDomain(ctx, userID, domainID)
}

func (h CLIHandler) Domains(ctx context.Context, userID string) ([]dto.DomainOutput, error) {
	return h.usecase.ListDomains(ctx, userID)
}

func (h CLIHandler) Domain(ctx context.Context, userID, domainID string) (dto.DomainOutput, error) {
	return h.usecase.GetDomain(ctx, userID, domainID)
}

func (h CLIHandler) Recompute(ctx context.Context, userID, domainID string) (dto.DomainOutput, error) {
	return h.usecase.Recompute(ctx, userID, domainID)
}

func (h CLIHandler) AddTarget(ctx context.Context, input dto.AddTargetInput) (dto.TargetOutput, error) {
	return h.usecase.AddTarget(ctx, input)
}

func (h CLIHandler) AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error) {
	return h.usecase.AddTask(ctx, input)
}

func (h CLIHandler) EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskOutput, error) {
	return h.usecase.EditTask(ctx, input)
}

func (h CLIHandler) RemoveTask(ctx context.Context, input dto.DeleteTaskInput) error {
	return h.usecase.DeleteTask(ctx, input)
}

func (h CLIHandler) CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error) {
	return h.usecase.CompleteTask(ctx, input)
}
