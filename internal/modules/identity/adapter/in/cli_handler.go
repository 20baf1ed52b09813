package in

import (
	"context"

	"pti/internal/modules/identity/dto"
	identityin "pti/internal/modules/identity/port/in"
)

type CLIHandler struct {
	usecase identityin.Usecase
}

func NewCLIHandler(usecase identityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) WhoAmI(ctx context.Context) (dto.PrincipalOutput, error) {
	return h.usecase.CurrentUser(ctx)
}

func (h CLIHandler) Login(ctx context.Context) (dto.PrincipalOutput, error) {
	return h.usecase.Login(ctx)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

// UserID resolves the current user id for scoping every other command.
func (h CLIHandler) UserID(ctx context.Context) (string, error) {
	principal, err := h.usecase.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return principal.UserID, nil
}
