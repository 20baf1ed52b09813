package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"pti/internal/modules/activity/domain"
	"pti/internal/modules/activity/dto"
	activityin "pti/internal/modules/activity/port/in"
	activityout "pti/internal/modules/activity/port/out"
	"pti/internal/modules/activity/service"
	cachein "pti/internal/modules/cache/port/in"
	apperrors "pti/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ActivityService
	cache    cachein.Usecase
	exporter activityout.ReportExporter
	logger   *log.Logger
}

func NewInteractor(svc *service.ActivityService, cache cachein.Usecase, exporter activityout.ReportExporter, logger *log.Logger) activityin.Usecase {
	return &Interactor{svc: svc, cache: cache, exporter: exporter, logger: logger}
}

func (i *Interactor) AddActivity(ctx context.Context, input dto.AddActivityInput) (dto.ActivityOutput, error) {
	activity, err := i.svc.AddActivity(ctx, input.UserID, domain.Activity{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Date:       input.Date,
		Notes:      input.Notes,
	}, service.SourceManual)
	if err != nil {
		return dto.ActivityOutput{}, err
	}
	return toActivityOutput(activity), nil
}

func (i *Interactor) LogTaskCompletion(ctx context.Context, input dto.LogTaskCompletionInput) (dto.ActivityOutput, error) {
	activity, err := i.svc.LogTaskCompletion(ctx, input.UserID, input.TaskName, input.TargetName, input.DomainName, input.EstimatedTime, input.CompletedAt)
	if err != nil {
		return dto.ActivityOutput{}, err
	}
	return toActivityOutput(activity), nil
}

func (i *Interactor) ListActivities(ctx context.Context, input dto.ListActivitiesInput) (dto.ActivityPage, error) {
	after, err := DecodeCursor(input.Cursor)
	if err != nil {
		return dto.ActivityPage{}, err
	}
	page, groups, next, err := i.svc.ListActivities(ctx, input.UserID, after, input.PageSize)
	if err != nil {
		return dto.ActivityPage{}, err
	}
	out := dto.ActivityPage{
		Activities: make([]dto.ActivityOutput, 0, len(page)),
		Days:       make([]dto.DayOutput, 0, len(groups)),
		NextCursor: EncodeCursor(next),
	}
	for _, activity := range page {
		out.Activities = append(out.Activities, toActivityOutput(activity))
	}
	for _, group := range groups {
		day := dto.DayOutput{Date: group.Date, TotalHours: group.TotalHours}
		for _, activity := range group.Activities {
			day.Activities = append(day.Activities, toActivityOutput(activity))
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}

func (i *Interactor) AddCategory(ctx context.Context, input dto.AddCategoryInput) (dto.CategoryOutput, error) {
	category, err := i.svc.AddCategory(ctx, input.UserID, input.Name)
	if err != nil {
		return dto.CategoryOutput{}, err
	}
	return dto.CategoryOutput{ID: category.ID, Name: category.Name, CreatedAt: category.CreatedAt}, nil
}

func (i *Interactor) ListCategories(ctx context.Context, userID string) ([]dto.CategoryOutput, error) {
	categories, err := i.svc.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryOutput, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.CategoryOutput{ID: category.ID, Name: category.Name, CreatedAt: category.CreatedAt})
	}
	return out, nil
}

func (i *Interactor) StartTimer(ctx context.Context, input dto.StartTimerInput) (dto.TimerOutput, error) {
	running, err := i.svc.StartTimer(ctx, input.UserID, input.Name, input.CategoryID, input.Notes)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return i.toTimerOutput(running), nil
}

func (i *Interactor) StopTimer(ctx context.Context, userID string) (dto.ActivityOutput, error) {
	activity, err := i.svc.StopTimer(ctx, userID)
	if err != nil {
		return dto.ActivityOutput{}, err
	}
	return toActivityOutput(activity), nil
}

func (i *Interactor) RunningTimer(ctx context.Context, userID string) (dto.TimerOutput, error) {
	running, err := i.svc.RunningTimer(ctx, userID)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return i.toTimerOutput(running), nil
}

// Report serves the cached category report when today's data is already
// computed and the cached report is non-empty; otherwise it regenerates it.
// Empty reports are never cached.
func (i *Interactor) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	if err := apperrors.RequireUser(input.UserID); err != nil {
		return dto.ReportOutput{}, err
	}
	if !input.Refresh && i.cache != nil && i.cache.IsFreshForToday(ctx, input.UserID) {
		if cached, ok := i.cache.Report(ctx, input.UserID); ok && len(cached) > 0 {
			return i.toReportOutput(cached, i.svc.Now(), true), nil
		}
	}
	hours, generatedAt, err := i.svc.GenerateReport(ctx, input.UserID)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	if len(hours) > 0 && i.cache != nil {
		if err := i.cache.SetReport(ctx, input.UserID, hours); err != nil {
			i.logger.Printf("cache report: %v", err)
		}
	}
	return i.toReportOutput(hours, generatedAt, false), nil
}

func (i *Interactor) ExportReport(ctx context.Context, input dto.ReportInput) (dto.ExportReportOutput, error) {
	if i.exporter == nil {
		return dto.ExportReportOutput{}, errors.New("report export is not configured")
	}
	report, err := i.Report(ctx, input)
	if err != nil {
		return dto.ExportReportOutput{}, err
	}
	path, err := i.exporter.Export(ctx, activityout.ReportNote{
		UserID:      input.UserID,
		GeneratedAt: report.GeneratedAt,
		WindowDays:  report.WindowDays,
		Hours:       report.Hours,
		Categories:  report.Categories,
	})
	if err != nil {
		return dto.ExportReportOutput{}, err
	}
	return dto.ExportReportOutput{Path: path, Report: report}, nil
}

func (i *Interactor) toReportOutput(hours map[string]float64, generatedAt time.Time, fromCache bool) dto.ReportOutput {
	return dto.ReportOutput{
		Hours:       hours,
		Categories:  domain.Categories(hours),
		Empty:       len(hours) == 0,
		FromCache:   fromCache,
		WindowDays:  i.svc.WindowDays(),
		GeneratedAt: generatedAt,
	}
}

func (i *Interactor) toTimerOutput(running domain.RunningActivity) dto.TimerOutput {
	elapsed := i.svc.Now().Sub(running.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return dto.TimerOutput{
		Name:         running.Name,
		CategoryID:   running.CategoryID,
		Notes:        running.Notes,
		StartedAt:    running.StartedAt,
		ElapsedHours: domain.RoundHours(elapsed.Hours()),
	}
}

func toActivityOutput(activity domain.Activity) dto.ActivityOutput {
	return dto.ActivityOutput{
		ID:            activity.ID,
		Name:          activity.Name,
		CategoryID:    activity.CategoryID,
		StartTime:     activity.StartTime,
		EndTime:       activity.EndTime,
		Date:          activity.Date,
		Notes:         activity.Notes,
		DurationHours: activity.DurationHours(),
		CreatedAt:     activity.CreatedAt,
	}
}

// EncodeCursor renders a page cursor as "<unix millis>:<id>".
func EncodeCursor(c activityout.Cursor) string {
	if c.IsZero() {
		return ""
	}
	return strconv.FormatInt(c.CreatedAt.UnixMilli(), 10) + ":" + c.ID
}

func DecodeCursor(raw string) (activityout.Cursor, error) {
	if raw == "" {
		return activityout.Cursor{}, nil
	}
	millis, id, ok := strings.Cut(raw, ":")
	if !ok || id == "" {
		return activityout.Cursor{}, fmt.Errorf("%w: malformed cursor %q", apperrors.ErrInvalidInput, raw)
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return activityout.Cursor{}, fmt.Errorf("%w: malformed cursor %q", apperrors.ErrInvalidInput, raw)
	}
	return activityout.Cursor{CreatedAt: time.UnixMilli(ms).UTC(), ID: id}, nil
}
