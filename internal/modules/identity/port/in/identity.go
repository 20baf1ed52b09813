package in

import (
	"context"

	"pti/internal/modules/identity/dto"
)

type Usecase interface {
	CurrentUser(ctx context.Context) (dto.PrincipalOutput, error)
	Login(ctx context.Context) (dto.PrincipalOutput, error)
	Logout(ctx context.Context) error
}
