package in

import (
	"context"

	"pti/internal/modules/activity/dto"
)

type Usecase interface {
	AddActivity(ctx context.Context, input dto.AddActivityInput) (dto.ActivityOutput, error)
	LogTaskCompletion(ctx context.Context, input dto.LogTaskCompletionInput) (dto.ActivityOutput, error)
	ListActivities(ctx context.Context, input dto.ListActivitiesInput) (dto.ActivityPage, error)
	AddCategory(ctx context.Context, input dto.AddCategoryInput) (dto.CategoryOutput, error)
	ListCategories(ctx context.Context, userID string) ([]dto.CategoryOutput, error)
	StartTimer(ctx context.Context, input dto.StartTimerInput) (dto.TimerOutput, error)
	StopTimer(ctx context.Context, userID string) (dto.ActivityOutput, error)
	RunningTimer(ctx context.Context, userID string) (dto.TimerOutput, error)
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	ExportReport(ctx context.Context, input dto.ReportInput) (dto.ExportReportOutput, error)
}
