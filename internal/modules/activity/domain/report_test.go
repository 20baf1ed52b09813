package domain_test

import (
	"testing"
	"time"

	"pti/internal/modules/activity/domain"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2024, 1, 31, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()
	if got := domain.Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected empty report, got %v", got)
	}
}

func TestAggregateSingleActivity(t *testing.T) {
	t.Parallel()
	report := domain.Aggregate([]domain.Activity{{Name: "run", CategoryID: "Fitness", StartTime: at(10, 0), EndTime: at(11, 30)}})
	if len(report) != 1 || report["Fitness"] != 1.5 {
		t.Fatalf("expected {Fitness: 1.5}, got %v", report)
	}
}

func TestAggregateSkipsInvalidDurations(t *testing.T) {
	t.Parallel()
	report := domain.Aggregate([]domain.Activity{
		{CategoryID: "a", StartTime: at(10, 0)},
		{CategoryID: "b", StartTime: at(11, 0), EndTime: at(10, 0)},
		{CategoryID: "c", StartTime: at(9, 0), EndTime: at(9, 0)},
	})
	if len(report) != 0 {
		t.Fatalf("all-invalid set must yield an empty report, got %v", report)
	}

	report = domain.Aggregate([]domain.Activity{
		{CategoryID: "Fitness", StartTime: at(6, 0), EndTime: at(7, 0)},
		{CategoryID: "Fitness", StartTime: at(18, 0), EndTime: at(18, 45)},
		{CategoryID: "Reading", StartTime: at(21, 0), EndTime: at(21, 20)},
		{CategoryID: "Reading"},
	})
	if report["Fitness"] != 1.75 || report["Reading"] != 0.33 {
		t.Fatalf("unexpected report %v", report)
	}
}

func TestDurationHoursFloorsMinutes(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	end := start.Add(59*time.Minute + 59*time.Second)
	a := domain.Activity{StartTime: &start, EndTime: &end}
	if got := a.DurationHours(); got != 0.98 {
		t.Fatalf("expected 0.98h, got %v", got)
	}
}

func TestCategoriesOrderedByHours(t *testing.T) {
	t.Parallel()
	got := domain.Categories(map[string]float64{"b": 1, "a": 1, "c": 3})
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGroupByDayNewestFirst(t *testing.T) {
	t.Parallel()
	day := func(d, h int) *time.Time {
		t := time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
		return &t
	}
	groups, skipped := domain.GroupByDay([]domain.Activity{
		{ID: "1", StartTime: day(29, 9), EndTime: day(29, 10)},
		{ID: "2", StartTime: day(31, 8), EndTime: day(31, 10)},
		{ID: "3"},
		{ID: "4", StartTime: day(29, 20), EndTime: day(29, 21)},
	}, time.UTC)
	if len(skipped) != 1 || skipped[0].ID != "3" {
		t.Fatalf("expected activity 3 skipped, got %v", skipped)
	}
	if len(groups) != 2 || groups[0].Date != "2024-01-31" || groups[1].Date != "2024-01-29" {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if groups[1].TotalHours != 2 || len(groups[1].Activities) != 2 {
		t.Fatalf("unexpected day total %+v", groups[1])
	}
}
