package service

import (
	"context"
	"log"
	"time"

	"pti/internal/modules/timespent/domain"
	timespentout "pti/internal/modules/timespent/port/out"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/metrics"
)

type TimeSpentService struct {
	clock  clock.Clock
	loc    *time.Location
	source timespentout.CompletedTaskSource
	logger *log.Logger
}

func NewTimeSpentService(clock clock.Clock, loc *time.Location, source timespentout.CompletedTaskSource, logger *log.Logger) *TimeSpentService {
	if loc == nil {
		loc = time.Local
	}
	return &TimeSpentService{clock: clock, loc: loc, source: source, logger: logger}
}

func (s *TimeSpentService) Now() time.Time {
	return s.clock.Now()
}

func (s *TimeSpentService) Location() *time.Location {
	return s.loc
}

func (s *TimeSpentService) Boundaries(now time.Time) map[int]time.Time {
	return domain.Boundaries(now, s.loc, domain.Windows)
}

// Compute reads the completed tasks and buckets them relative to now.
func (s *TimeSpentService) Compute(ctx context.Context, userID string, now time.Time) (map[int]float64, int, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return nil, 0, err
	}
	tasks, err := s.source.ListCompletedTasks(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	hours, skipped := domain.Compute(tasks, s.Boundaries(now))
	for _, task := range skipped {
		metrics.InvalidRecords.WithLabelValues("task").Inc()
		s.logger.Printf("skip task %s (%s): %v: %s", task.ID, task.Name, apperrors.ErrInvalidRecord, domain.SkipReason(task))
	}
	return hours, len(skipped), nil
}
