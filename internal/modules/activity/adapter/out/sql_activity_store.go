package out

import (
	"context"
	"database/sql"
	"time"

	"pti/internal/modules/activity/domain"
	activityout "pti/internal/modules/activity/port/out"
	"pti/internal/platform/id"
	"pti/internal/platform/sqldb"
)

type SQLActivityStore struct {
	db  *sqldb.DB
	ids id.Generator
}

func NewSQLActivityStore(db *sqldb.DB, ids id.Generator) activityout.ActivityStore {
	if ids == nil {
		ids = id.UUID{}
	}
	return &SQLActivityStore{db: db, ids: ids}
}

const activityColumns = `id, name, category_id, start_time, end_time, date, notes, created_at`

func (s *SQLActivityStore) CreateActivity(ctx context.Context, userID string, activity domain.Activity) (string, error) {
	activity.ID = s.ids.New()
	const stmt = `
INSERT INTO activities (user_id, id, name, category_id, start_time, end_time, date, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		userID, activity.ID, activity.Name, activity.CategoryID,
		sqldb.Millis(activity.StartTime), sqldb.Millis(activity.EndTime), sqldb.Millis(activity.Date),
		activity.Notes, activity.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", sqldb.Wrap("insert activity", err)
	}
	return activity.ID, nil
}

func (s *SQLActivityStore) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Activity, error) {
	return s.query(ctx, `
SELECT `+activityColumns+` FROM activities
WHERE user_id = ? AND date IS NOT NULL AND date >= ?
ORDER BY date DESC, id`, userID, since.UnixMilli())
}

func (s *SQLActivityStore) ListPage(ctx context.Context, userID string, after activityout.Cursor, limit int) ([]domain.Activity, error) {
	if after.IsZero() {
		return s.query(ctx, `
SELECT `+activityColumns+` FROM activities
WHERE user_id = ?
ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	}
	ms := after.CreatedAt.UnixMilli()
	return s.query(ctx, `
SELECT `+activityColumns+` FROM activities
WHERE user_id = ? AND (created_at < ? OR (created_at = ? AND id < ?))
ORDER BY created_at DESC, id DESC LIMIT ?`, userID, ms, ms, after.ID, limit)
}

func (s *SQLActivityStore) CreateCategory(ctx context.Context, userID string, category domain.Category) (string, error) {
	category.ID = s.ids.New()
	_, err := s.db.ExecContext(ctx, `INSERT INTO activity_categories (user_id, id, name, created_at) VALUES (?, ?, ?, ?)`,
		userID, category.ID, category.Name, category.CreatedAt.UnixMilli())
	if err != nil {
		return "", sqldb.Wrap("insert category", err)
	}
	return category.ID, nil
}

func (s *SQLActivityStore) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM activity_categories WHERE user_id = ? ORDER BY name, id`, userID)
	if err != nil {
		return nil, sqldb.Wrap("list categories", err)
	}
	defer rows.Close()
	categories := []domain.Category{}
	for rows.Next() {
		var (
			category  domain.Category
			createdAt int64
		)
		if err := rows.Scan(&category.ID, &category.Name, &createdAt); err != nil {
			return nil, sqldb.Wrap("scan category", err)
		}
		category.CreatedAt = time.UnixMilli(createdAt).UTC()
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Wrap("list categories", err)
	}
	return categories, nil
}

func (s *SQLActivityStore) query(ctx context.Context, stmt string, args ...any) ([]domain.Activity, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, sqldb.Wrap("list activities", err)
	}
	defer rows.Close()
	activities := []domain.Activity{}
	for rows.Next() {
		var (
			activity         domain.Activity
			start, end, date sql.NullInt64
			createdAt        int64
		)
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.CategoryID, &start, &end, &date, &activity.Notes, &createdAt); err != nil {
			return nil, sqldb.Wrap("scan activity", err)
		}
		activity.StartTime = sqldb.FromMillis(start)
		activity.EndTime = sqldb.FromMillis(end)
		activity.Date = sqldb.FromMillis(date)
		activity.CreatedAt = time.UnixMilli(createdAt).UTC()
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Wrap("list activities", err)
	}
	return activities, nil
}
