package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	cachein "pti/internal/modules/cache/port/in"
	"pti/internal/modules/timespent/domain"
	"pti/internal/modules/timespent/dto"
	timespentin "pti/internal/modules/timespent/port/in"
	"pti/internal/modules/timespent/service"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
)

type Interactor struct {
	svc    *service.TimeSpentService
	cache  cachein.Usecase
	logger *log.Logger
}

func NewInteractor(svc *service.TimeSpentService, cache cachein.Usecase, logger *log.Logger) timespentin.Usecase {
	return &Interactor{svc: svc, cache: cache, logger: logger}
}

// Snapshot serves today's cached buckets or recomputes them at most once per
// calendar day. A failing task source leaves the cached snapshot untouched.
func (i *Interactor) Snapshot(ctx context.Context, input dto.SnapshotInput) (dto.SnapshotOutput, error) {
	if err := apperrors.RequireUser(input.UserID); err != nil {
		return dto.SnapshotOutput{}, err
	}
	now := i.svc.Now()
	today := clock.DateKey(now, i.svc.Location())
	boundaries := i.svc.Boundaries(now)

	if !input.Refresh && i.cache.IsFreshForToday(ctx, input.UserID) {
		if cached, ok := i.cache.TimeSpent(ctx, input.UserID); ok && hasAllWindows(cached) {
			return toOutput(cached, boundaries, today, true, 0), nil
		}
	}

	hours, skipped, err := i.svc.Compute(ctx, input.UserID, now)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	if err := i.cache.SetTimeSpent(ctx, input.UserID, hours); err != nil {
		i.logger.Printf("cache time spent: %v", err)
	} else if err := i.cache.MarkFreshForToday(ctx, input.UserID); err != nil {
		i.logger.Printf("mark time spent fresh: %v", err)
	}
	return toOutput(hours, boundaries, today, false, skipped), nil
}

func hasAllWindows(hours map[int]float64) bool {
	for _, key := range domain.Windows {
		if _, ok := hours[key]; !ok {
			return false
		}
	}
	return true
}

func toOutput(hours map[int]float64, boundaries map[int]time.Time, today string, fromCache bool, skipped int) dto.SnapshotOutput {
	buckets := domain.Buckets(hours, boundaries)
	out := dto.SnapshotOutput{
		Buckets:    make([]dto.BucketOutput, 0, len(buckets)),
		ComputedOn: today,
		FromCache:  fromCache,
		Skipped:    skipped,
	}
	for _, bucket := range buckets {
		out.Buckets = append(out.Buckets, dto.BucketOutput{
			Key:      bucket.Key,
			Label:    Label(bucket.Key),
			Since:    bucket.Since,
			Hours:    bucket.Hours,
			Capacity: bucket.Capacity,
			Unused:   bucket.Unused,
		})
	}
	return out
}

func Label(key int) string {
	switch key {
	case domain.WindowToday:
		return "today"
	case domain.WindowYesterday:
		return "since yesterday"
	default:
		return fmt.Sprintf("last %d days", key)
	}
}
