package domain

import (
	"math"
	"sort"
	"time"

	"pti/internal/platform/clock"
)

// Window keys. 0 starts at local midnight today, 1 at local midnight
// yesterday, every other key N at now minus N days.
const (
	WindowToday     = 0
	WindowYesterday = 1
	WindowWeek      = 7
	WindowMonth     = 30
)

var Windows = []int{WindowToday, WindowYesterday, WindowWeek, WindowMonth}

type CompletedTask struct {
	ID             string
	Name           string
	CompletedTime  float64
	CompletionDate *time.Time
}

// Boundary is the inclusive lower bound of window key relative to now.
func Boundary(now time.Time, loc *time.Location, key int) time.Time {
	switch key {
	case WindowToday:
		return clock.StartOfDay(now, loc)
	case WindowYesterday:
		return clock.StartOfDay(now, loc).AddDate(0, 0, -1)
	default:
		return now.AddDate(0, 0, -key)
	}
}

func Boundaries(now time.Time, loc *time.Location, keys []int) map[int]time.Time {
	out := make(map[int]time.Time, len(keys))
	for _, key := range keys {
		out[key] = Boundary(now, loc, key)
	}
	return out
}

// Compute sums CompletedTime into every window whose boundary the completion
// date reaches. Windows overlap: one task counts toward each window it
// satisfies. Tasks without a completion date or with an unusable time are
// returned in skipped.
func Compute(tasks []CompletedTask, boundaries map[int]time.Time) (hours map[int]float64, skipped []CompletedTask) {
	hours = make(map[int]float64, len(boundaries))
	for key := range boundaries {
		hours[key] = 0
	}
	for _, task := range tasks {
		if SkipReason(task) != "" {
			skipped = append(skipped, task)
			continue
		}
		for key, since := range boundaries {
			if !task.CompletionDate.Before(since) {
				hours[key] += task.CompletedTime
			}
		}
	}
	for key, h := range hours {
		hours[key] = math.Round(h*100) / 100
	}
	return hours, skipped
}

// SkipReason says why Compute leaves task out, or "" when it is counted.
func SkipReason(task CompletedTask) string {
	switch {
	case task.CompletionDate == nil:
		return "missing completion date"
	case math.IsNaN(task.CompletedTime) || math.IsInf(task.CompletedTime, 0):
		return "completed time is not a finite number"
	default:
		return ""
	}
}

// Capacity is the number of hours a window can hold for the unused-time
// share: a full day for keys 0 and 1, 24*N otherwise.
func Capacity(key int) float64 {
	if key <= WindowYesterday {
		return 24
	}
	return float64(24 * key)
}

type Bucket struct {
	Key      int
	Since    time.Time
	Hours    float64
	Capacity float64
	Unused   float64
}

// Buckets orders the windows by key and derives their unused time.
func Buckets(hours map[int]float64, boundaries map[int]time.Time) []Bucket {
	keys := make([]int, 0, len(hours))
	for key := range hours {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	out := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		capacity := Capacity(key)
		out = append(out, Bucket{
			Key:      key,
			Since:    boundaries[key],
			Hours:    hours[key],
			Capacity: capacity,
			Unused:   math.Max(0, capacity-hours[key]),
		})
	}
	return out
}
