package out

import (
	"context"
	"time"

	"pti/internal/modules/identity/domain"
)

// CredentialStore returns apperrors.ErrNotAuthenticated from Load when
// nobody is logged in.
type CredentialStore interface {
	Load(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

// Authenticator runs an interactive login against the identity provider.
type Authenticator interface {
	Authenticate(ctx context.Context) (domain.Credentials, error)
}

type UserDirectory interface {
	Upsert(ctx context.Context, principal domain.Principal, at time.Time) error
	Get(ctx context.Context, userID string) (domain.Principal, error)
}
