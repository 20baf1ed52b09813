package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pti/internal/modules/activity/domain"
	activityout "pti/internal/modules/activity/port/out"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/metrics"
)

const (
	SourceManual = "manual"
	SourceTask   = "task"
	SourceTimer  = "timer"
)

type Options struct {
	WindowDays int
	PageSize   int
	Location   *time.Location
}

type ActivityService struct {
	clock      clock.Clock
	store      activityout.ActivityStore
	timers     activityout.TimerStore
	logger     *log.Logger
	loc        *time.Location
	windowDays int
	pageSize   int
}

func NewActivityService(clock clock.Clock, store activityout.ActivityStore, timers activityout.TimerStore, logger *log.Logger, opts Options) *ActivityService {
	if opts.WindowDays <= 0 {
		opts.WindowDays = domain.DefaultWindowDays
	}
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &ActivityService{
		clock:      clock,
		store:      store,
		timers:     timers,
		logger:     logger,
		loc:        opts.Location,
		windowDays: opts.WindowDays,
		pageSize:   opts.PageSize,
	}
}

func (s *ActivityService) WindowDays() int {
	return s.windowDays
}

func (s *ActivityService) Now() time.Time {
	return s.clock.Now()
}

func (s *ActivityService) AddActivity(ctx context.Context, userID string, activity domain.Activity, source string) (domain.Activity, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Activity{}, err
	}
	now := s.clock.Now()
	activity.Name = strings.TrimSpace(activity.Name)
	activity.CategoryID = strings.TrimSpace(activity.CategoryID)
	if activity.Date == nil {
		date := now
		if activity.StartTime != nil {
			date = *activity.StartTime
		}
		activity.Date = &date
	}
	activity.CreatedAt = now
	if err := activity.Validate(); err != nil {
		return domain.Activity{}, err
	}
	id, err := s.store.CreateActivity(ctx, userID, activity)
	if err != nil {
		return domain.Activity{}, err
	}
	activity.ID = id
	metrics.ActivitiesLogged.WithLabelValues(source).Inc()
	return activity, nil
}

// LogTaskCompletion writes the activity that stands for a completed task: it
// ends at the completion instant and starts estimatedTime hours earlier.
func (s *ActivityService) LogTaskCompletion(ctx context.Context, userID, taskName, targetName, domainName string, estimatedTime float64, completedAt time.Time) (domain.Activity, error) {
	if strings.TrimSpace(taskName) == "" {
		taskName = "Completed Task"
	}
	if targetName == "" {
		targetName = domainName
	}
	end := completedAt
	start := end.Add(-time.Duration(estimatedTime * float64(time.Hour)))
	date := end
	return s.AddActivity(ctx, userID, domain.Activity{
		Name:       taskName,
		CategoryID: domainName,
		StartTime:  &start,
		EndTime:    &end,
		Date:       &date,
		Notes:      fmt.Sprintf("Completed from target %q", targetName),
	}, SourceTask)
}

// ListActivities returns one page newest first together with its day groups.
// next is zero when the page was not full.
func (s *ActivityService) ListActivities(ctx context.Context, userID string, after activityout.Cursor, pageSize int) ([]domain.Activity, []domain.DayGroup, activityout.Cursor, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, nil, activityout.Cursor{}, err
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	page, err := s.store.ListPage(ctx, userID, after, pageSize)
	if err != nil {
		return nil, nil, activityout.Cursor{}, err
	}
	next := activityout.Cursor{}
	if len(page) == pageSize {
		last := page[len(page)-1]
		next = activityout.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	groups, skipped := domain.GroupByDay(page, s.loc)
	for _, activity := range skipped {
		metrics.InvalidRecords.WithLabelValues("activity").Inc()
		s.logger.Printf("skip activity %s: %v: missing start time", activity.ID, apperrors.ErrInvalidRecord)
	}
	return page, groups, next, nil
}

func (s *ActivityService) AddCategory(ctx context.Context, userID, name string) (domain.Category, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.Category{}, err
	}
	category := domain.Category{Name: strings.TrimSpace(name), CreatedAt: s.clock.Now()}
	if err := category.Validate(); err != nil {
		return domain.Category{}, err
	}
	id, err := s.store.CreateCategory(ctx, userID, category)
	if err != nil {
		return domain.Category{}, err
	}
	category.ID = id
	return category, nil
}

func (s *ActivityService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListCategories(ctx, userID)
}

func (s *ActivityService) StartTimer(ctx context.Context, userID, name, categoryID, notes string) (domain.RunningActivity, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.RunningActivity{}, err
	}
	_, err := s.timers.LoadRunning(ctx, userID)
	if err == nil {
		return domain.RunningActivity{}, apperrors.ErrTimerRunning
	}
	if !errors.Is(err, apperrors.ErrNoRunningTimer) {
		return domain.RunningActivity{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.RunningActivity{}, fmt.Errorf("%w: activity name is required", apperrors.ErrInvalidInput)
	}
	running := domain.RunningActivity{
		Name:       strings.TrimSpace(name),
		CategoryID: strings.TrimSpace(categoryID),
		Notes:      notes,
		StartedAt:  s.clock.Now(),
	}
	if err := s.timers.SaveRunning(ctx, userID, running); err != nil {
		return domain.RunningActivity{}, err
	}
	return running, nil
}

// StopTimer turns the running timer into a stored activity ending now.
func (s *ActivityService) StopTimer(ctx context.Context, userID string) (domain.Activity, error) {
	running, err := s.RunningTimer(ctx, userID)
	if err != nil {
		return domain.Activity{}, err
	}
	start := running.StartedAt
	end := s.clock.Now()
	if end.Before(start) {
		end = start
	}
	activity, err := s.AddActivity(ctx, userID, domain.Activity{
		Name:       running.Name,
		CategoryID: running.CategoryID,
		StartTime:  &start,
		EndTime:    &end,
		Date:       &start,
		Notes:      running.Notes,
	}, SourceTimer)
	if err != nil {
		return domain.Activity{}, err
	}
	if err := s.timers.ClearRunning(ctx, userID); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}

func (s *ActivityService) RunningTimer(ctx context.Context, userID string) (domain.RunningActivity, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return domain.RunningActivity{}, err
	}
	return s.timers.LoadRunning(ctx, userID)
}

// GenerateReport aggregates the activities dated within the trailing window.
func (s *ActivityService) GenerateReport(ctx context.Context, userID string) (map[string]float64, time.Time, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, time.Time{}, err
	}
	now := s.clock.Now()
	activities, err := s.store.ListSince(ctx, userID, domain.WindowStart(now, s.windowDays))
	if err != nil {
		return nil, time.Time{}, err
	}
	metrics.ReportsGenerated.Inc()
	return domain.Aggregate(activities), now, nil
}
