package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrTimerRunning     = errors.New("activity timer already running")
	ErrNoRunningTimer   = errors.New("no running activity timer")
)

// RequireUser fails with ErrNotAuthenticated when no user id is available.
func RequireUser(userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return nil
}
