package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	cachein "pti/internal/modules/cache/port/in"
	"pti/internal/modules/planner/domain"
	"pti/internal/modules/planner/dto"
	plannerin "pti/internal/modules/planner/port/in"
	plannerout "pti/internal/modules/planner/port/out"
	"pti/internal/modules/planner/service"
)

type Interactor struct {
	svc      *service.PlannerService
	recorder plannerout.ActivityRecorder
	cache    cachein.Usecase
	logger   *log.Logger
	inflight singleflight.Group
}

func NewInteractor(svc *service.PlannerService, recorder plannerout.ActivityRecorder, cache cachein.Usecase, logger *log.Logger) plannerin.Usecase {
	return &Interactor{svc: svc, recorder: recorder, cache: cache, logger: logger}
}

func (i *Interactor) CreateDomain(ctx context.Context, input dto.CreateDomainInput) (dto.DomainOutput, error) {
	d, err := i.svc.CreateDomain(ctx, input.UserID, input.Name, input.Color)
	if err != nil {
		return dto.DomainOutput{}, err
	}
	i.cacheProgress(ctx, input.UserID, d)
	return toDomainOutput(d), nil
}

func (i *Interactor) UpdateDomain(ctx context.Context, input dto.UpdateDomainInput) (dto.DomainOutput, error) {
	d, err := i.svc.UpdateDomain(ctx, input.UserID, input.DomainID, input.Name, input.Color)
	if err != nil {
		return dto.DomainOutput{}, err
	}
	return toDomainOutput(d), nil
}

func (i *Interactor) DeleteDomain(ctx context.Context, userID, domainID string) error {
	if err := i.svc.DeleteDomain(ctx, userID, domainID); err != nil {
		return err
	}
	if i.cache != nil {
		if err := i.cache.RemoveDomainProgress(ctx, userID, domainID); err != nil {
			i.logger.Printf("uncache domain progress %s: %v", domainID, err)
		}
	}
	return nil
}

func (i *Interactor) ListDomains(ctx context.Context, userID string) ([]dto.DomainOutput, error) {
	domains, err := i.svc.ListDomains(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DomainOutput, 0, len(domains))
	for _, d := range domains {
		out = append(out, toDomainOutput(d))
	}
	return out, nil
}

func (i *Interactor) GetDomain(ctx context.Context, userID, domainID string) (dto.DomainOutput, error) {
	d, err := i.svc.GetDomain(ctx, userID, domainID)
	if err != nil {
		return dto.DomainOutput{}, err
	}
	return toDomainOutput(d), nil
}

func (i *Interactor) AddTarget(ctx context.Context, input dto.AddTargetInput) (dto.TargetOutput, error) {
	target, err := i.svc.AddTarget(ctx, input.UserID, input.DomainID, input.Name, input.Deadline)
	if err != nil {
		return dto.TargetOutput{}, err
	}
	return toTargetOutput(target), nil
}

func (i *Interactor) AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error) {
	task, rolled, err := i.svc.AddTask(ctx, input.UserID, input.TargetID, input.Name, input.EstimatedTime)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	i.cacheProgress(ctx, input.UserID, rolled)
	return toTaskOutput(task), nil
}

func (i *Interactor) EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskOutput, error) {
	task, rolled, err := i.svc.EditTask(ctx, input.UserID, input.TaskID, input.Name, input.EstimatedTime)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	i.cacheProgress(ctx, input.UserID, rolled)
	return toTaskOutput(task), nil
}

func (i *Interactor) DeleteTask(ctx context.Context, input dto.DeleteTaskInput) error {
	rolled, err := i.svc.DeleteTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return err
	}
	i.cacheProgress(ctx, input.UserID, rolled)
	return nil
}

// CompleteTask serializes completions per task so the synthesized activity is
// written at most once even when the same completion is submitted twice.
func (i *Interactor) CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error) {
	key := input.UserID + "/" + input.TaskID
	v, err, _ := i.inflight.Do(key, func() (any, error) {
		task, rolled, event, err := i.svc.CompleteTask(ctx, input.UserID, input.TaskID, input.CompletedTime)
		if err != nil {
			return dto.CompleteTaskOutput{}, err
		}
		out := dto.CompleteTaskOutput{Task: toTaskOutput(task), Domain: toDomainOutput(rolled)}
		if i.recorder != nil {
			if err := i.recorder.RecordCompletion(ctx, event); err != nil {
				i.logger.Printf("record activity for task %s: %v", task.ID, err)
			} else {
				out.ActivityLogged = true
			}
		}
		i.cacheProgress(ctx, input.UserID, rolled)
		return out, nil
	})
	if err != nil {
		return dto.CompleteTaskOutput{}, err
	}
	return v.(dto.CompleteTaskOutput), nil
}

func (i *Interactor) Recompute(ctx context.Context, userID, domainID string) (dto.DomainOutput, error) {
	rolled, err := i.svc.Recompute(ctx, userID, domainID)
	if err != nil {
		return dto.DomainOutput{}, err
	}
	i.cacheProgress(ctx, userID, rolled)
	return toDomainOutput(rolled), nil
}

func (i *Interactor) ListCompletedTasks(ctx context.Context, userID string) ([]dto.CompletedTaskOutput, error) {
	tasks, err := i.svc.ListCompletedTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompletedTaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, dto.CompletedTaskOutput{
			ID:             task.ID,
			Name:           task.Name,
			CompletedTime:  task.CompletedTime,
			CompletionDate: task.CompletionDate,
		})
	}
	return out, nil
}

func (i *Interactor) cacheProgress(ctx context.Context, userID string, d domain.Domain) {
	if i.cache == nil || d.ID == "" {
		return
	}
	if err := i.cache.SetDomainProgress(ctx, userID, d.ID, d.Progress); err != nil {
		i.logger.Printf("cache domain progress %s: %v", d.ID, err)
	}
}

func toTaskOutput(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:             task.ID,
		TargetID:       task.TargetID,
		Name:           task.Name,
		EstimatedTime:  task.EstimatedTime,
		Completed:      task.Completed,
		CompletedTime:  task.CompletedTime,
		CompletionDate: task.CompletionDate,
	}
}

func toTargetOutput(target domain.Target) dto.TargetOutput {
	out := dto.TargetOutput{
		ID:             target.ID,
		DomainID:       target.DomainID,
		Name:           target.Name,
		Deadline:       target.Deadline,
		TotalEstimated: target.TotalEstimated,
		TotalCompleted: target.TotalCompleted,
		Progress:       target.Progress,
		Tasks:          make([]dto.TaskOutput, 0, len(target.Tasks)),
	}
	for _, task := range target.Tasks {
		out.Tasks = append(out.Tasks, toTaskOutput(task))
	}
	return out
}

func toDomainOutput(d domain.Domain) dto.DomainOutput {
	out := dto.DomainOutput{
		ID:             d.ID,
		Name:           d.Name,
		Color:          d.Color,
		TotalEstimated: d.TotalEstimated,
		TotalCompleted: d.TotalCompleted,
		TotalPending:   d.TotalPending,
		Progress:       d.Progress,
		Targets:        make([]dto.TargetOutput, 0, len(d.Targets)),
	}
	for _, target := range d.Targets {
		out.Targets = append(out.Targets, toTargetOutput(target))
	}
	return out
}
