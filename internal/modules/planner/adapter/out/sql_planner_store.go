package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pti/internal/modules/planner/domain"
	plannerout "pti/internal/modules/planner/port/out"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/id"
	"pti/internal/platform/sqldb"
)

// SQLPlannerStore keeps the user -> domain -> target -> task tree in the
// shared SQL database. Every statement is scoped by user_id.
type SQLPlannerStore struct {
	db  *sqldb.DB
	ids id.Generator
}

func NewSQLPlannerStore(db *sqldb.DB, ids id.Generator) plannerout.PlannerStore {
	if ids == nil {
		ids = id.UUID{}
	}
	return &SQLPlannerStore{db: db, ids: ids}
}

func (s *SQLPlannerStore) CreateDomain(ctx context.Context, userID string, d domain.Domain) (string, error) {
	d.ID = s.ids.New()
	const stmt = `
INSERT INTO domains (user_id, id, name, color, total_estimated, total_completed, total_pending, progress, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		userID, d.ID, d.Name, d.Color,
		d.TotalEstimated, d.TotalCompleted, d.TotalPending, d.Progress,
		d.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", sqldb.Wrap("insert domain", err)
	}
	return d.ID, nil
}

func (s *SQLPlannerStore) UpdateDomain(ctx context.Context, userID string, d domain.Domain) error {
	res, err := s.db.ExecContext(ctx, `UPDATE domains SET name = ?, color = ? WHERE user_id = ? AND id = ?`, d.Name, d.Color, userID, d.ID)
	if err != nil {
		return sqldb.Wrap("update domain", err)
	}
	return expectRow(res, "domain", d.ID)
}

func (s *SQLPlannerStore) DeleteDomain(ctx context.Context, userID, domainID string) error {
	return s.db.Within(ctx, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM domains WHERE user_id = ? AND id = ?`, userID, domainID)
		if err != nil {
			return sqldb.Wrap("delete domain", err)
		}
		if err := expectRow(res, "domain", domainID); err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM targets WHERE user_id = ? AND domain_id = ?`, userID, domainID); err != nil {
			return sqldb.Wrap("delete targets", err)
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND domain_id = ?`, userID, domainID); err != nil {
			return sqldb.Wrap("delete tasks", err)
		}
		return nil
	})
}

func (s *SQLPlannerStore) GetDomain(ctx context.Context, userID, domainID string) (domain.Domain, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, color, total_estimated, total_completed, total_pending, progress, created_at
FROM domains WHERE user_id = ? AND id = ?`, userID, domainID)
	d, err := scanDomain(row)
	if err != nil {
		return domain.Domain{}, sqldb.Wrap(fmt.Sprintf("get domain %s", domainID), err)
	}
	targets, err := s.loadTargets(ctx, `WHERE user_id = ? AND domain_id = ?`, userID, domainID)
	if err != nil {
		return domain.Domain{}, err
	}
	tasks, err := s.loadTasks(ctx, `WHERE user_id = ? AND domain_id = ?`, userID, domainID)
	if err != nil {
		return domain.Domain{}, err
	}
	return assemble([]domain.Domain{d}, targets, tasks)[0], nil
}

func (s *SQLPlannerStore) ListDomains(ctx context.Context, userID string) ([]domain.Domain, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, color, total_estimated, total_completed, total_pending, progress, created_at
FROM domains WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, sqldb.Wrap("list domains", err)
	}
	domains := []domain.Domain{}
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			_ = rows.Close()
			return nil, sqldb.Wrap("scan domain", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Close(); err != nil {
		return nil, sqldb.Wrap("list domains", err)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Wrap("list domains", err)
	}
	targets, err := s.loadTargets(ctx, `WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.loadTasks(ctx, `WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return assemble(domains, targets, tasks), nil
}

func (s *SQLPlannerStore) CreateTarget(ctx context.Context, userID string, target domain.Target) (string, error) {
	target.ID = s.ids.New()
	const stmt = `
INSERT INTO targets (user_id, domain_id, id, name, deadline, total_estimated, total_completed, progress, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		userID, target.DomainID, target.ID, target.Name, target.Deadline,
		target.TotalEstimated, target.TotalCompleted, target.Progress,
		target.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", sqldb.Wrap("insert target", err)
	}
	return target.ID, nil
}

func (s *SQLPlannerStore) GetTarget(ctx context.Context, userID, targetID string) (domain.Target, error) {
	targets, err := s.loadTargets(ctx, `WHERE user_id = ? AND id = ?`, userID, targetID)
	if err != nil {
		return domain.Target{}, err
	}
	if len(targets) == 0 {
		return domain.Target{}, fmt.Errorf("get target %s: %w", targetID, apperrors.ErrNotFound)
	}
	return targets[0], nil
}

func (s *SQLPlannerStore) CreateTask(ctx context.Context, userID string, task domain.Task) (string, error) {
	task.ID = s.ids.New()
	const stmt = `
INSERT INTO tasks (user_id, domain_id, target_id, id, name, estimated_time, completed, completed_time, completion_date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		userID, task.DomainID, task.TargetID, task.ID, task.Name,
		task.EstimatedTime, task.Completed, task.CompletedTime,
		sqldb.Millis(task.CompletionDate), task.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", sqldb.Wrap("insert task", err)
	}
	return task.ID, nil
}

func (s *SQLPlannerStore) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	tasks, err := s.loadTasks(ctx, `WHERE user_id = ? AND id = ?`, userID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if len(tasks) == 0 {
		return domain.Task{}, fmt.Errorf("get task %s: %w", taskID, apperrors.ErrNotFound)
	}
	return tasks[0], nil
}

func (s *SQLPlannerStore) UpdateTask(ctx context.Context, userID string, task domain.Task) error {
	const stmt = `
UPDATE tasks SET name = ?, estimated_time = ?, completed = ?, completed_time = ?, completion_date = ?
WHERE user_id = ? AND id = ?`
	res, err := s.db.ExecContext(ctx, stmt,
		task.Name, task.EstimatedTime, task.Completed, task.CompletedTime,
		sqldb.Millis(task.CompletionDate), userID, task.ID,
	)
	if err != nil {
		return sqldb.Wrap("update task", err)
	}
	return expectRow(res, "task", task.ID)
}

func (s *SQLPlannerStore) DeleteTask(ctx context.Context, userID, taskID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, taskID)
	if err != nil {
		return sqldb.Wrap("delete task", err)
	}
	return expectRow(res, "task", taskID)
}

// ListCompletedTasks returns every completed task, including ones whose
// completion date is missing; the caller decides how to treat those.
func (s *SQLPlannerStore) ListCompletedTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.loadTasks(ctx, `WHERE user_id = ? AND completed = ?`, userID, true)
}

func (s *SQLPlannerStore) SaveTargetTotals(ctx context.Context, userID string, target domain.Target) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE targets SET total_estimated = ?, total_completed = ?, progress = ?
WHERE user_id = ? AND id = ?`,
		target.TotalEstimated, target.TotalCompleted, target.Progress, userID, target.ID)
	return sqldb.Wrap("save target totals", err)
}

func (s *SQLPlannerStore) SaveDomainTotals(ctx context.Context, userID string, d domain.Domain) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE domains SET total_estimated = ?, total_completed = ?, total_pending = ?, progress = ?
WHERE user_id = ? AND id = ?`,
		d.TotalEstimated, d.TotalCompleted, d.TotalPending, d.Progress, userID, d.ID)
	if err != nil {
		return sqldb.Wrap("save domain totals", err)
	}
	return expectRow(res, "domain", d.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDomain(row scanner) (domain.Domain, error) {
	var (
		d         domain.Domain
		createdAt int64
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Color, &d.TotalEstimated, &d.TotalCompleted, &d.TotalPending, &d.Progress, &createdAt); err != nil {
		return domain.Domain{}, err
	}
	d.CreatedAt = time.UnixMilli(createdAt).UTC()
	return d, nil
}

func (s *SQLPlannerStore) loadTargets(ctx context.Context, where string, args ...any) ([]domain.Target, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, domain_id, name, deadline, total_estimated, total_completed, progress, created_at
FROM targets `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, sqldb.Wrap("list targets", err)
	}
	defer rows.Close()
	targets := []domain.Target{}
	for rows.Next() {
		var (
			target    domain.Target
			createdAt int64
		)
		if err := rows.Scan(&target.ID, &target.DomainID, &target.Name, &target.Deadline, &target.TotalEstimated, &target.TotalCompleted, &target.Progress, &createdAt); err != nil {
			return nil, sqldb.Wrap("scan target", err)
		}
		target.CreatedAt = time.UnixMilli(createdAt).UTC()
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Wrap("list targets", err)
	}
	return targets, nil
}

func (s *SQLPlannerStore) loadTasks(ctx context.Context, where string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, domain_id, target_id, name, estimated_time, completed, completed_time, completion_date, created_at
FROM tasks `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, sqldb.Wrap("list tasks", err)
	}
	defer rows.Close()
	tasks := []domain.Task{}
	for rows.Next() {
		var (
			task           domain.Task
			completionDate sql.NullInt64
			createdAt      int64
		)
		if err := rows.Scan(&task.ID, &task.DomainID, &task.TargetID, &task.Name, &task.EstimatedTime, &task.Completed, &task.CompletedTime, &completionDate, &createdAt); err != nil {
			return nil, sqldb.Wrap("scan task", err)
		}
		task.CompletionDate = sqldb.FromMillis(completionDate)
		task.CreatedAt = time.UnixMilli(createdAt).UTC()
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, sqldb.Wrap("list tasks", err)
	}
	return tasks, nil
}

// assemble nests tasks under their targets and targets under their domains.
func assemble(domains []domain.Domain, targets []domain.Target, tasks []domain.Task) []domain.Domain {
	byTarget := map[string][]domain.Task{}
	for _, task := range tasks {
		byTarget[task.TargetID] = append(byTarget[task.TargetID], task)
	}
	byDomain := map[string][]domain.Target{}
	for _, target := range targets {
		target.Tasks = byTarget[target.ID]
		byDomain[target.DomainID] = append(byDomain[target.DomainID], target)
	}
	for i := range domains {
		domains[i].Targets = byDomain[domains[i].ID]
	}
	return domains
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return sqldb.Wrap("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	return nil
}
