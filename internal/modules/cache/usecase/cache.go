package usecase

import (
	"context"

	"pti/internal/modules/cache/domain"
	cachein "pti/internal/modules/cache/port/in"
	"pti/internal/modules/cache/service"
	"pti/internal/platform/metrics"
)

type Interactor struct {
	svc *service.CacheService
}

func NewInteractor(svc *service.CacheService) cachein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) IsFreshForToday(ctx context.Context, userID string) bool {
	fresh := i.svc.IsFreshForToday(ctx, userID)
	observe(domain.KeyLastUpdated, fresh, "stale")
	return fresh
}

func (i *Interactor) MarkFreshForToday(ctx context.Context, userID string) error {
	return i.svc.MarkFreshForToday(ctx, userID)
}

func (i *Interactor) TimeSpent(ctx context.Context, userID string) (map[int]float64, bool) {
	hours := map[int]float64{}
	ok := i.svc.GetJSON(ctx, userID, domain.KeyTimeSpent, &hours)
	observe(domain.KeyTimeSpent, ok, "miss")
	return hours, ok
}

func (i *Interactor) SetTimeSpent(ctx context.Context, userID string, hours map[int]float64) error {
	return i.svc.SetJSON(ctx, userID, domain.KeyTimeSpent, hours)
}

func (i *Interactor) Report(ctx context.Context, userID string) (map[string]float64, bool) {
	report := map[string]float64{}
	ok := i.svc.GetJSON(ctx, userID, domain.KeyActivityReport, &report)
	observe(domain.KeyActivityReport, ok, "miss")
	return report, ok
}

func (i *Interactor) SetReport(ctx context.Context, userID string, report map[string]float64) error {
	return i.svc.SetJSON(ctx, userID, domain.KeyActivityReport, report)
}

func (i *Interactor) DomainProgress(ctx context.Context, userID string) map[string]int {
	progress := map[string]int{}
	if !i.svc.GetJSON(ctx, userID, domain.KeyDomainProgress, &progress) {
		return map[string]int{}
	}
	return progress
}

func (i *Interactor) SetDomainProgress(ctx context.Context, userID, domainID string, progress int) error {
	all := i.DomainProgress(ctx, userID)
	all[domainID] = progress
	return i.svc.SetJSON(ctx, userID, domain.KeyDomainProgress, all)
}

func (i *Interactor) RemoveDomainProgress(ctx context.Context, userID, domainID string) error {
	all := i.DomainProgress(ctx, userID)
	if _, ok := all[domainID]; !ok {
		return nil
	}
	delete(all, domainID)
	return i.svc.SetJSON(ctx, userID, domain.KeyDomainProgress, all)
}

func (i *Interactor) Clear(ctx context.Context, userID string) error {
	return i.svc.Clear(ctx, userID)
}

func observe(key string, hit bool, missLabel string) {
	result := "hit"
	if !hit {
		result = missLabel
	}
	metrics.CacheLookups.WithLabelValues(key, result).Inc()
}
