package dto

import "time"

type SnapshotInput struct {
	UserID  string
	Refresh bool
}

type BucketOutput struct {
	Key      int
	Label    string
	Since    time.Time
	Hours    float64
	Capacity float64
	Unused   float64
}

type SnapshotOutput struct {
	Buckets    []BucketOutput
	ComputedOn string
	FromCache  bool
	// Skipped counts completed tasks left out for a missing date or unusable hours.
	Skipped int
}
