package out

import (
	"context"

	plannerin "pti/internal/modules/planner/port/in"
	"pti/internal/modules/timespent/domain"
	timespentout "pti/internal/modules/timespent/port/out"
)

// PlannerTaskSource reads completed tasks through the planner module.
type PlannerTaskSource struct {
	planner plannerin.Usecase
}

func NewPlannerTaskSource(planner plannerin.Usecase) timespentout.CompletedTaskSource {
	return &PlannerTaskSource{planner: planner}
}

func (s *PlannerTaskSource) ListCompletedTasks(ctx context.Context, userID string) ([]domain.CompletedTask, error) {
	tasks, err := s.planner.ListCompletedTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompletedTask, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, domain.CompletedTask{
			ID:             task.ID,
			Name:           task.Name,
			CompletedTime:  task.CompletedTime,
			CompletionDate: task.CompletionDate,
		})
	}
	return out, nil
}
