package out

import (
	"context"
	"time"

	"pti/internal/modules/activity/domain"
)

// Cursor marks the last activity of a page in createdAt-descending order.
// The zero value starts from the newest activity.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

func (c Cursor) IsZero() bool {
	return c.ID == "" && c.CreatedAt.IsZero()
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, userID string, activity domain.Activity) (string, error)
	// ListSince returns activities whose date is at or after since.
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Activity, error)
	ListPage(ctx context.Context, userID string, after Cursor, limit int) ([]domain.Activity, error)
	CreateCategory(ctx context.Context, userID string, category domain.Category) (string, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

type TimerStore interface {
	SaveRunning(ctx context.Context, userID string, running domain.RunningActivity) error
	LoadRunning(ctx context.Context, userID string) (domain.RunningActivity, error)
	ClearRunning(ctx context.Context, userID string) error
}

// ReportNote is a rendered category report ready to be written out.
type ReportNote struct {
	UserID      string
	GeneratedAt time.Time
	WindowDays  int
	Hours       map[string]float64
	Categories  []string
}

type ReportExporter interface {
	Export(ctx context.Context, note ReportNote) (string, error)
}
