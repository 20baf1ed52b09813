package domain

import (
	"fmt"
	"time"

	apperrors "pti/internal/platform/errors"
)

// Principal is the authenticated user every store call is scoped to.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
}

// Credentials are what a login leaves on disk.
type Credentials struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	IDToken      string    `json:"id_token,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	LoggedInAt   time.Time `json:"logged_in_at"`
}

func (c Credentials) Principal() Principal {
	return Principal{UserID: c.UserID, Email: c.Email, DisplayName: c.DisplayName}
}

func (c Credentials) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("%w: identity provider returned no subject", apperrors.ErrNotAuthenticated)
	}
	return nil
}

// Label is the friendliest name available for the principal.
func (p Principal) Label() string {
	switch {
	case p.DisplayName != "" && p.Email != "":
		return fmt.Sprintf("%s <%s>", p.DisplayName, p.Email)
	case p.Email != "":
		return p.Email
	case p.DisplayName != "":
		return p.DisplayName
	default:
		return p.UserID
	}
}
