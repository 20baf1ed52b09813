package service

import (
	"context"
	"strings"

	"pti/internal/modules/planner/domain"
	plannerout "pti/internal/modules/planner/port/out"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/metrics"
	"pti/internal/platform/tx"
)

type PlannerService struct {
	clock clock.Clock
	store plannerout.PlannerStore
	tx    tx.Manager
}

func NewPlannerService(clock clock.Clock, store plannerout.PlannerStore, txm tx.Manager) *PlannerService {
	if txm == nil {
		txm = tx.Direct{}
	}
	return &PlannerService{clock: clock, store: store, tx: txm}
}

func (s *PlannerService) CreateDomain(ctx context.Context, userID, name, color string) (domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Domain{}, err
	}
	if strings.TrimSpace(color) == "" {
		color = domain.DefaultColor
	}
	d := domain.Domain{Name: strings.TrimSpace(name), Color: color, CreatedAt: s.clock.Now()}
	if err := d.Validate(); err != nil {
		return domain.Domain{}, err
	}
	id, err := s.store.CreateDomain(ctx, userID, d)
	if err != nil {
		return domain.Domain{}, err
	}
	d.ID = id
	return d, nil
}

func (s *PlannerService) UpdateDomain(ctx context.Context, userID, domainID, name, color string) (domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Domain{}, err
	}
	d, err := s.store.GetDomain(ctx, userID, domainID)
	if err != nil {
		return domain.Domain{}, err
	}
	if strings.TrimSpace(name) != "" {
		d.Name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(color) != "" {
		d.Color = color
	}
	if err := d.Validate(); err != nil {
		return domain.Domain{}, err
	}
	if err := s.store.UpdateDomain(ctx, userID, d); err != nil {
		return domain.Domain{}, err
	}
	return d, nil
}

func (s *PlannerService) DeleteDomain(ctx context.Context, userID, domainID string) error {
	if err := apperrors.RequireUser(userID); err != nil {
		return err
	}
	return s.store.DeleteDomain(ctx, userID, domainID)
}

func (s *PlannerService) ListDomains(ctx context.Context, userID string) ([]domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListDomains(ctx, userID)
}

func (s *PlannerService) GetDomain(ctx context.Context, userID, domainID string) (domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Domain{}, err
	}
	return s.store.GetDomain(ctx, userID, domainID)
}

func (s *PlannerService) AddTarget(ctx context.Context, userID, domainID, name, deadline string) (domain.Target, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Target{}, err
	}
	if _, err := s.store.GetDomain(ctx, userID, domainID); err != nil {
		return domain.Target{}, err
	}
	target := domain.Target{
		DomainID:  domainID,
		Name:      strings.TrimSpace(name),
		Deadline:  strings.TrimSpace(deadline),
		CreatedAt: s.clock.Now(),
	}
	if err := target.Validate(); err != nil {
		return domain.Target{}, err
	}
	id, err := s.store.CreateTarget(ctx, userID, target)
	if err != nil {
		return domain.Target{}, err
	}
	target.ID = id
	return target, nil
}

func (s *PlannerService) AddTask(ctx context.Context, userID, targetID, name string, estimate float64) (domain.Task, domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	target, err := s.store.GetTarget(ctx, userID, targetID)
	if err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	task := domain.Task{
		DomainID:      target.DomainID,
		TargetID:      target.ID,
		Name:          strings.TrimSpace(name),
		EstimatedTime: estimate,
		CreatedAt:     s.clock.Now(),
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, domain.Domain{}, err
	}

	var rolled domain.Domain
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		id, err := s.store.CreateTask(ctx, userID, task)
		if err != nil {
			return err
		}
		task.ID = id
		rolled, err = s.recompute(ctx, userID, task.DomainID)
		return err
	})
	if err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	return task, rolled, nil
}

func (s *PlannerService) EditTask(ctx context.Context, userID, taskID string, name *string, estimate *float64) (domain.Task, domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	if name != nil {
		task.Name = strings.TrimSpace(*name)
	}
	if estimate != nil {
		task.EstimatedTime = *estimate
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, domain.Domain{}, err
	}

	var rolled domain.Domain
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateTask(ctx, userID, task); err != nil {
			return err
		}
		rolled, err = s.recompute(ctx, userID, task.DomainID)
		return err
	})
	if err != nil {
		return domain.Task{}, domain.Domain{}, err
	}
	return task, rolled, nil
}

func (s *PlannerService) DeleteTask(ctx context.Context, userID, taskID string) (domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Domain{}, err
	}
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return domain.Domain{}, err
	}
	var rolled domain.Domain
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteTask(ctx, userID, taskID); err != nil {
			return err
		}
		rolled, err = s.recompute(ctx, userID, task.DomainID)
		return err
	})
	if err != nil {
		return domain.Domain{}, err
	}
	return rolled, nil
}

// CompleteTask marks the task complete, persists the rollup and returns the
// completion event the caller must record exactly once.
func (s *PlannerService) CompleteTask(ctx context.Context, userID, taskID string, hours *float64) (domain.Task, domain.Domain, domain.CompletionEvent, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Task{}, domain.Domain{}, domain.CompletionEvent{}, err
	}
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, domain.Domain{}, domain.CompletionEvent{}, err
	}
	now := s.clock.Now()
	if err := task.Complete(now, hours); err != nil {
		return domain.Task{}, domain.Domain{}, domain.CompletionEvent{}, err
	}

	var rolled domain.Domain
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateTask(ctx, userID, task); err != nil {
			return err
		}
		rolled, err = s.recompute(ctx, userID, task.DomainID)
		return err
	})
	if err != nil {
		return domain.Task{}, domain.Domain{}, domain.CompletionEvent{}, err
	}

	event := domain.CompletionEvent{
		UserID:        userID,
		TaskID:        task.ID,
		TaskName:      task.Name,
		DomainName:    rolled.Name,
		EstimatedTime: task.EstimatedTime,
		CompletedAt:   now,
	}
	if target, ok := rolled.FindTarget(task.TargetID); ok {
		event.TargetName = target.Name
	}
	return task, rolled, event, nil
}

// Recompute rolls up a domain from its stored tasks and persists the totals.
func (s *PlannerService) Recompute(ctx context.Context, userID, domainID string) (domain.Domain, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Domain{}, err
	}
	var rolled domain.Domain
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		rolled, err = s.recompute(ctx, userID, domainID)
		return err
	})
	return rolled, err
}

func (s *PlannerService) recompute(ctx context.Context, userID, domainID string) (domain.Domain, error) {
	d, err := s.store.GetDomain(ctx, userID, domainID)
	if err != nil {
		return domain.Domain{}, err
	}
	rolled := domain.RollupDomain(d)
	for _, target := range rolled.Targets {
		if err := s.store.SaveTargetTotals(ctx, userID, target); err != nil {
			return domain.Domain{}, err
		}
	}
	if err := s.store.SaveDomainTotals(ctx, userID, rolled); err != nil {
		return domain.Domain{}, err
	}
	metrics.Rollups.Inc()
	return rolled, nil
}

func (s *PlannerService) ListCompletedTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListCompletedTasks(ctx, userID)
}
