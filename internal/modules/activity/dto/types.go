package dto

import "time"

type AddActivityInput struct {
	UserID     string
	Name       string
	CategoryID string
	StartTime  *time.Time
	EndTime    *time.Time
	// Date defaults to StartTime, then to now.
	Date  *time.Time
	Notes string
}

type ActivityOutput struct {
	ID            string
	Name          string
	CategoryID    string
	StartTime     *time.Time
	EndTime       *time.Time
	Date          *time.Time
	Notes         string
	DurationHours float64
	CreatedAt     time.Time
}

type ListActivitiesInput struct {
	UserID string
	// Cursor is the NextCursor of the previous page, empty for the first.
	Cursor   string
	PageSize int
}

type DayOutput struct {
	Date       string
	TotalHours float64
	Activities []ActivityOutput
}

type ActivityPage struct {
	Activities []ActivityOutput
	Days       []DayOutput
	// NextCursor is empty when there are no further pages.
	NextCursor string
}

type LogTaskCompletionInput struct {
	UserID        string
	TaskName      string
	TargetName    string
	DomainName    string
	EstimatedTime float64
	CompletedAt   time.Time
}

type AddCategoryInput struct {
	UserID string
	Name   string
}

type CategoryOutput struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type StartTimerInput struct {
	UserID     string
	Name       string
	CategoryID string
	Notes      string
}

type TimerOutput struct {
	Name         string
	CategoryID   string
	Notes        string
	StartedAt    time.Time
	ElapsedHours float64
}

type ReportInput struct {
	UserID  string
	Refresh bool
}

type ReportOutput struct {
	Hours map[string]float64
	// Categories lists the labels of Hours by descending time.
	Categories []string
	// Empty means no data; callers skip rendering.
	Empty       bool
	FromCache   bool
	WindowDays  int
	GeneratedAt time.Time
}

type ExportReportOutput struct {
	Path   string
	Report ReportOutput
}
