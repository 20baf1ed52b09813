package out

import (
	"context"

	activitydto "pti/internal/modules/activity/dto"
	activityin "pti/internal/modules/activity/port/in"
	"pti/internal/modules/planner/domain"
	plannerout "pti/internal/modules/planner/port/out"
)

// ActivityRecorder logs task completions through the activity module.
type ActivityRecorder struct {
	activities activityin.Usecase
}

func NewActivityRecorder(activities activityin.Usecase) plannerout.ActivityRecorder {
	return &ActivityRecorder{activities: activities}
}

func (r *ActivityRecorder) RecordCompletion(ctx context.Context, event domain.CompletionEvent) error {
	_, err := r.activities.LogTaskCompletion(ctx, activitydto.LogTaskCompletionInput{
		UserID:        event.UserID,
		TaskName:      event.TaskName,
		TargetName:    event.TargetName,
		DomainName:    event.DomainName,
		EstimatedTime: event.EstimatedTime,
		CompletedAt:   event.CompletedAt,
	})
	return err
}
