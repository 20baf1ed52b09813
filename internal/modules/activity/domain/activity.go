package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "pti/internal/platform/errors"
)

const (
	// DefaultWindowDays is the trailing window covered by the category report.
	DefaultWindowDays = 30
	DefaultPageSize   = 10
)

type Activity struct {
	ID         string
	Name       string
	CategoryID string
	StartTime  *time.Time
	EndTime    *time.Time
	// Date is the reporting attribute the category report filters on.
	Date      *time.Time
	Notes     string
	CreatedAt time.Time
}

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// RunningActivity is a timer that has been started but not stopped yet.
type RunningActivity struct {
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	Notes      string    `json:"notes"`
	StartedAt  time.Time `json:"started_at"`
}

// DurationHours is the whole minutes between start and end expressed in
// hours with two decimals. Missing, identical or unordered times yield 0.
func (a Activity) DurationHours() float64 {
	if a.StartTime == nil || a.EndTime == nil || !a.StartTime.Before(*a.EndTime) {
		return 0
	}
	minutes := math.Floor(a.EndTime.Sub(*a.StartTime).Minutes())
	return RoundHours(minutes / 60)
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: activity name is required", apperrors.ErrInvalidInput)
	}
	if a.StartTime != nil && a.EndTime != nil && a.EndTime.Before(*a.StartTime) {
		return fmt.Errorf("%w: end time is before start time", apperrors.ErrInvalidInput)
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// RoundHours rounds to two decimals.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
