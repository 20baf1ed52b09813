package out

import (
	"context"
	"time"

	"pti/internal/modules/identity/domain"
	identityout "pti/internal/modules/identity/port/out"
	"pti/internal/platform/sqldb"
)

type SQLUserDirectory struct {
	db *sqldb.DB
}

func NewSQLUserDirectory(db *sqldb.DB) identityout.UserDirectory {
	return &SQLUserDirectory{db: db}
}

// Upsert records a login. Empty profile fields never erase known ones.
func (d *SQLUserDirectory) Upsert(ctx context.Context, principal domain.Principal, at time.Time) error {
	const stmt = `
INSERT INTO users (id, email, display_name, created_at, last_login_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  email = COALESCE(NULLIF(excluded.email, ''), users.email),
  display_name = COALESCE(NULLIF(excluded.display_name, ''), users.display_name),
  last_login_at = excluded.last_login_at`
	ms := at.UnixMilli()
	_, err := d.db.ExecContext(ctx, stmt, principal.UserID, principal.Email, principal.DisplayName, ms, ms)
	return sqldb.Wrap("upsert user", err)
}

func (d *SQLUserDirectory) Get(ctx context.Context, userID string) (domain.Principal, error) {
	p := domain.Principal{}
	err := d.db.QueryRowContext(ctx, `SELECT id, email, display_name FROM users WHERE id = ?`, userID).Scan(&p.UserID, &p.Email, &p.DisplayName)
	if err != nil {
		return domain.Principal{}, sqldb.Wrap("get user "+userID, err)
	}
	return p, nil
}
