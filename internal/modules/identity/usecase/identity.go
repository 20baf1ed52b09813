package usecase

import (
	"context"

	"pti/internal/modules/identity/domain"
	"pti/internal/modules/identity/dto"
	identityin "pti/internal/modules/identity/port/in"
	"pti/internal/modules/identity/service"
)

type Interactor struct {
	svc *service.IdentityService
}

func NewInteractor(svc *service.IdentityService) identityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CurrentUser(ctx context.Context) (dto.PrincipalOutput, error) {
	principal, source, err := i.svc.CurrentUser(ctx)
	if err != nil {
		return dto.PrincipalOutput{}, err
	}
	return toOutput(principal, source), nil
}

func (i *Interactor) Login(ctx context.Context) (dto.PrincipalOutput, error) {
	principal, err := i.svc.Login(ctx)
	if err != nil {
		return dto.PrincipalOutput{}, err
	}
	return toOutput(principal, service.SourceCredentials), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func toOutput(p domain.Principal, source string) dto.PrincipalOutput {
	return dto.PrincipalOutput{
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Label:       p.Label(),
		Source:      source,
	}
}
