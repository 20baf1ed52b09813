package domain

import (
	"sort"
	"time"
)

// WindowStart is the inclusive lower bound of a trailing report window.
func WindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// Aggregate sums activity durations per category. Activities without a
// positive duration contribute nothing, so an all-invalid input yields an
// empty mapping.
func Aggregate(activities []Activity) map[string]float64 {
	report := map[string]float64{}
	for _, activity := range activities {
		hours := activity.DurationHours()
		if hours <= 0 {
			continue
		}
		report[activity.CategoryID] += hours
	}
	for category, hours := range report {
		report[category] = RoundHours(hours)
	}
	return report
}

// Categories returns the report labels sorted by descending hours, then name.
func Categories(report map[string]float64) []string {
	labels := make([]string, 0, len(report))
	for label := range report {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if report[labels[i]] != report[labels[j]] {
			return report[labels[i]] > report[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

type DayGroup struct {
	Date       string
	Activities []Activity
	TotalHours float64
}

// GroupByDay buckets activities by the local calendar day of their start
// time, newest day first. Activities without a start time are returned in
// skipped.
func GroupByDay(activities []Activity, loc *time.Location) (groups []DayGroup, skipped []Activity) {
	index := map[string]int{}
	for _, activity := range activities {
		if activity.StartTime == nil {
			skipped = append(skipped, activity)
			continue
		}
		key := activity.StartTime.In(loc).Format("2006-01-02")
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, DayGroup{Date: key})
		}
		groups[pos].Activities = append(groups[pos].Activities, activity)
		groups[pos].TotalHours = RoundHours(groups[pos].TotalHours + activity.DurationHours())
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups, skipped
}
