package in

import (
	"context"

	"pti/internal/modules/activity/dto"
	activityin "pti/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddActivityInput) (dto.ActivityOutput, error) {
	return h.usecase.AddActivity(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, input dto.ListActivitiesInput) (dto.ActivityPage, error) {
	return h.usecase.ListActivities(ctx, input)
}

func (h CLIHandler) AddCategory(ctx context.Context, input dto.AddCategoryInput) (dto.CategoryOutput, error) {
	return h.usecase.AddCategory(ctx, input)
}

func (h CLIHandler) Categories(ctx context.Context, userID string) ([]dto.CategoryOutput, error) {
	return h.usecase.ListCategories(ctx, userID)
}

func (h CLIHandler) Start(ctx context.Context, input dto.StartTimerInput) (dto.TimerOutput, error) {
	return h.usecase.StartTimer(ctx, input)
}

func (h CLIHandler) Stop(ctx context.Context, userID string) (dto.ActivityOutput, error) {
	return h.usecase.StopTimer(ctx, userID)
}

func (h CLIHandler) Status(ctx context.Context, userID string) (dto.TimerOutput, error) {
	return h.usecase.RunningTimer(ctx, userID)
}

func (h CLIHandler) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context, input dto.ReportInput) (dto.ExportReportOutput, error) {
	return h.usecase.ExportReport(ctx, input)
}
