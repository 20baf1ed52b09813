package service

import (
	"context"
	"errors"

	"pti/internal/modules/identity/domain"
	identityout "pti/internal/modules/identity/port/out"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
)

const (
	SourceOverride    = "override"
	SourceCredentials = "credentials"
)

type IdentityService struct {
	clock    clock.Clock
	creds    identityout.CredentialStore
	auth     identityout.Authenticator
	users    identityout.UserDirectory
	override string
}

// NewIdentityService builds the service. A non-empty override pins the
// current user and bypasses stored credentials.
func NewIdentityService(clock clock.Clock, creds identityout.CredentialStore, auth identityout.Authenticator, users identityout.UserDirectory, override string) *IdentityService {
	return &IdentityService{clock: clock, creds: creds, auth: auth, users: users, override: override}
}

func (s *IdentityService) CurrentUser(ctx context.Context) (domain.Principal, string, error) {
	if s.override != "" {
		principal := domain.Principal{UserID: s.override}
		if s.users != nil {
			if known, err := s.users.Get(ctx, s.override); err == nil {
				principal = known
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return domain.Principal{}, "", err
			}
		}
		return principal, SourceOverride, nil
	}
	creds, err := s.creds.Load(ctx)
	if err != nil {
		return domain.Principal{}, "", err
	}
	if err := creds.Validate(); err != nil {
		return domain.Principal{}, "", err
	}
	return creds.Principal(), SourceCredentials, nil
}

func (s *IdentityService) Login(ctx context.Context) (domain.Principal, error) {
	if s.auth == nil {
		return domain.Principal{}, errors.New("no identity provider configured")
	}
	creds, err := s.auth.Authenticate(ctx)
	if err != nil {
		return domain.Principal{}, err
	}
	if err := creds.Validate(); err != nil {
		return domain.Principal{}, err
	}
	creds.LoggedInAt = s.clock.Now()
	if err := s.creds.Save(ctx, creds); err != nil {
		return domain.Principal{}, err
	}
	if s.users != nil {
		if err := s.users.Upsert(ctx, creds.Principal(), creds.LoggedInAt); err != nil {
			return domain.Principal{}, err
		}
	}
	return creds.Principal(), nil
}

func (s *IdentityService) Logout(ctx context.Context) error {
	return s.creds.Clear(ctx)
}
