package in

import "context"

// Usecase is the per-user cache of derived aggregates. Reads never fail:
// storage problems degrade to "absent" and callers recompute.
type Usecase interface {
	IsFreshForToday(ctx context.Context, userID string) bool
	MarkFreshForToday(ctx context.Context, userID string) error
	TimeSpent(ctx context.Context, userID string) (map[int]float64, bool)
	SetTimeSpent(ctx context.Context, userID string, hours map[int]float64) error
	Report(ctx context.Context, userID string) (map[string]float64, bool)
	SetReport(ctx context.Context, userID string, report map[string]float64) error
	DomainProgress(ctx context.Context, userID string) map[string]int
	SetDomainProgress(ctx context.Context, userID, domainID string, progress int) error
	RemoveDomainProgress(ctx context.Context, userID, domainID string) error
	Clear(ctx context.Context, userID string) error
}
