package dto

import "time"

type CreateDomainInput struct {
	UserID string
	Name   string
	Color  string
}

type UpdateDomainInput struct {
	UserID   string
	DomainID string
	Name     string
	Color    string
}

type AddTargetInput struct {
	UserID   string
	DomainID string
	Name     string
	Deadline string
}

type AddTaskInput struct {
	UserID        string
	TargetID      string
	Name          string
	EstimatedTime float64
}

type EditTaskInput struct {
	UserID        string
	TaskID        string
	Name          *string
	EstimatedTime *float64
}

type DeleteTaskInput struct {
	UserID string
	TaskID string
}

type CompleteTaskInput struct {
	UserID string
	TaskID string
	// CompletedTime defaults to the task estimate.
	CompletedTime *float64
}

type TaskOutput struct {
	ID             string
	TargetID       string
	Name           string
	EstimatedTime  float64
	Completed      bool
	CompletedTime  float64
	CompletionDate *time.Time
}

type TargetOutput struct {
	ID             string
	DomainID       string
	Name           string
	Deadline       string
	TotalEstimated float64
	TotalCompleted float64
	Progress       int
	Tasks          []TaskOutput
}

type DomainOutput struct {
	ID             string
	Name           string
	Color          string
	TotalEstimated float64
	TotalCompleted float64
	TotalPending   float64
	Progress       int
	Targets        []TargetOutput
}

type CompleteTaskOutput struct {
	Task   TaskOutput
	Domain DomainOutput
	// ActivityLogged is false when the completion was stored but the
	// synthesized activity could not be written.
	ActivityLogged bool
}

type CompletedTaskOutput struct {
	ID             string
	Name           string
	CompletedTime  float64
	CompletionDate *time.Time
}
