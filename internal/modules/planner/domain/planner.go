package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	apperrors "pti/internal/platform/errors"
)

const (
	DefaultColor   = "#007bff"
	DeadlineLayout = "2006-01-02"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Task struct {
	ID             string
	DomainID       string
	TargetID       string
	Name           string
	EstimatedTime  float64
	Completed      bool
	CompletedTime  float64
	CompletionDate *time.Time
	CreatedAt      time.Time
}

type Target struct {
	ID             string
	DomainID       string
	Name           string
	Deadline       string
	Tasks          []Task
	TotalEstimated float64
	TotalCompleted float64
	Progress       int
	CreatedAt      time.Time
}

type Domain struct {
	ID             string
	Name           string
	Color          string
	Targets        []Target
	TotalEstimated float64
	TotalCompleted float64
	TotalPending   float64
	Progress       int
	CreatedAt      time.Time
}

// CompletionEvent describes a task completion for activity synthesis.
type CompletionEvent struct {
	UserID        string
	TaskID        string
	TaskName      string
	TargetName    string
	DomainName    string
	EstimatedTime float64
	CompletedAt   time.Time
}

// HasEstimate reports whether the task carries a usable estimate.
func (t Task) HasEstimate() bool {
	return isHours(t.EstimatedTime)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name is required", apperrors.ErrInvalidInput)
	}
	if !t.HasEstimate() {
		return fmt.Errorf("%w: estimated time must be a non-negative number of hours", apperrors.ErrInvalidInput)
	}
	return nil
}

// Complete records the completion exactly once. When hours is nil the
// estimate is logged as the time spent.
func (t *Task) Complete(at time.Time, hours *float64) error {
	if t.Completed {
		return apperrors.ErrAlreadyCompleted
	}
	spent := t.EstimatedTime
	if hours != nil {
		spent = *hours
	}
	if !isHours(spent) {
		return fmt.Errorf("%w: completed time must be a non-negative number of hours", apperrors.ErrInvalidInput)
	}
	completedAt := at
	t.Completed = true
	t.CompletedTime = spent
	t.CompletionDate = &completedAt
	return nil
}

func (t Target) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: target name is required", apperrors.ErrInvalidInput)
	}
	if _, err := time.Parse(DeadlineLayout, t.Deadline); err != nil {
		return fmt.Errorf("%w: deadline must be YYYY-MM-DD", apperrors.ErrInvalidInput)
	}
	return nil
}

func (d Domain) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: domain name is required", apperrors.ErrInvalidInput)
	}
	if !hexColor.MatchString(d.Color) {
		return fmt.Errorf("%w: color must look like #rrggbb", apperrors.ErrInvalidInput)
	}
	return nil
}

func isHours(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
