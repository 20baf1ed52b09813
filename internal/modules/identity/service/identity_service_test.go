package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	identityout "pti/internal/modules/identity/adapter/out"
	"pti/internal/modules/identity/domain"
	"pti/internal/modules/identity/service"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/sqldb"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type fakeAuthenticator struct {
	creds domain.Credentials
	err   error
}

func (f fakeAuthenticator) Authenticate(context.Context) (domain.Credentials, error) {
	return f.creds, f.err
}

func openDB(t *testing.T) *sqldb.DB {
	t.Helper()
	db, err := sqldb.Open(context.Background(), sqldb.DialectSQLite, filepath.Join(t.TempDir(), "pti.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoginStoresCredentialsAndUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	users := identityout.NewSQLUserDirectory(openDB(t))
	clk := fixedClock{now: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)}
	auth := fakeAuthenticator{creds: domain.Credentials{UserID: "sub-1", Email: "jane@example.com", DisplayName: "Jane"}}
	svc := service.NewIdentityService(clk, identityout.NewFileCredentialStore(credsPath), auth, users, "")

	if _, _, err := svc.CurrentUser(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated before login, got %v", err)
	}
	principal, err := svc.Login(ctx)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if principal.UserID != "sub-1" {
		t.Fatalf("unexpected principal %+v", principal)
	}
	info, err := os.Stat(credsPath)
	if err != nil {
		t.Fatalf("stat credentials: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 credentials, got %v", info.Mode().Perm())
	}
	current, source, err := svc.CurrentUser(ctx)
	if err != nil || current.Email != "jane@example.com" || source != service.SourceCredentials {
		t.Fatalf("unexpected current user %+v %s %v", current, source, err)
	}

	if err := users.Upsert(ctx, domain.Principal{UserID: "sub-1"}, clk.now.Add(time.Hour)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	known, err := users.Get(ctx, "sub-1")
	if err != nil || known.Email != "jane@example.com" || known.DisplayName != "Jane" {
		t.Fatalf("empty fields must not erase the profile: %+v %v", known, err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.CurrentUser(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated after logout, got %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("second logout must be a no-op: %v", err)
	}
}

func TestOverrideWinsOverCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	users := identityout.NewSQLUserDirectory(db)
	if err := users.Upsert(ctx, domain.Principal{UserID: "pinned", Email: "p@example.com"}, time.Now()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	svc := service.NewIdentityService(fixedClock{}, identityout.NewFileCredentialStore(filepath.Join(t.TempDir(), "none.json")), nil, users, "pinned")
	principal, source, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if principal.UserID != "pinned" || principal.Email != "p@example.com" || source != service.SourceOverride {
		t.Fatalf("unexpected principal %+v from %s", principal, source)
	}

	anonymous := service.NewIdentityService(fixedClock{}, identityout.NewFileCredentialStore(filepath.Join(t.TempDir(), "none.json")), nil, users, "unknown")
	if p, _, err := anonymous.CurrentUser(ctx); err != nil || p.UserID != "unknown" {
		t.Fatalf("unknown override must still resolve: %+v %v", p, err)
	}
}

func TestLoginRejectsMissingSubject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := service.NewIdentityService(fixedClock{}, identityout.NewFileCredentialStore(filepath.Join(dir, "c.json")), fakeAuthenticator{}, nil, "")
	if _, err := svc.Login(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "c.json")); !os.IsNotExist(err) {
		t.Fatalf("no credentials should be written, stat err=%v", err)
	}
}
