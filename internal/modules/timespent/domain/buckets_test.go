package domain_test

import (
	"math"
	"testing"
	"time"

	"pti/internal/modules/timespent/domain"
)

func ptr(t time.Time) *time.Time { return &t }

func TestComputeYesterdayTaskSkipsToday(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	tasks := []domain.CompletedTask{{ID: "t1", CompletedTime: 2, CompletionDate: ptr(time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC))}}

	hours, skipped := domain.Compute(tasks, domain.Boundaries(now, time.UTC, domain.Windows))
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped %v", skipped)
	}
	want := map[int]float64{0: 0, 1: 2, 7: 2, 30: 2}
	for key, h := range want {
		if hours[key] != h {
			t.Fatalf("window %d: expected %v, got %v", key, h, hours[key])
		}
	}
}

func TestComputeBoundariesAreInclusive(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	b := domain.Boundaries(now, time.UTC, domain.Windows)
	tasks := []domain.CompletedTask{
		{ID: "midnight", CompletedTime: 1, CompletionDate: ptr(b[0])},
		{ID: "before-midnight", CompletedTime: 2, CompletionDate: ptr(b[0].Add(-time.Second))},
		{ID: "yesterday-edge", CompletedTime: 4, CompletionDate: ptr(b[1])},
		{ID: "before-yesterday", CompletedTime: 8, CompletionDate: ptr(b[1].Add(-time.Second))},
		{ID: "week-edge", CompletedTime: 16, CompletionDate: ptr(b[7])},
		{ID: "before-week", CompletedTime: 32, CompletionDate: ptr(b[7].Add(-time.Second))},
		{ID: "month-edge", CompletedTime: 64, CompletionDate: ptr(b[30])},
		{ID: "before-month", CompletedTime: 128, CompletionDate: ptr(b[30].Add(-time.Second))},
	}
	hours, _ := domain.Compute(tasks, b)
	want := map[int]float64{
		0:  1,
		1:  1 + 2 + 4,
		7:  1 + 2 + 4 + 8 + 16,
		30: 1 + 2 + 4 + 8 + 16 + 32 + 64,
	}
	for key, h := range want {
		if hours[key] != h {
			t.Fatalf("window %d: expected %v, got %v", key, h, hours[key])
		}
	}
}

func TestComputeSkipsTasksWithoutDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	tasks := []domain.CompletedTask{
		{ID: "no-date", CompletedTime: 3},
		{ID: "nan", CompletedTime: math.NaN(), CompletionDate: ptr(now)},
		{ID: "ok", CompletedTime: 1.25, CompletionDate: ptr(now.Add(-time.Hour))},
	}
	hours, skipped := domain.Compute(tasks, domain.Boundaries(now, time.UTC, domain.Windows))
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %v", skipped)
	}
	if hours[0] != 1.25 || hours[30] != 1.25 {
		t.Fatalf("unexpected hours %v", hours)
	}
}

func TestSkipReasonNamesTheCause(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		task domain.CompletedTask
		want string
	}{
		{task: domain.CompletedTask{CompletedTime: 3}, want: "missing completion date"},
		{task: domain.CompletedTask{CompletedTime: math.NaN(), CompletionDate: ptr(now)}, want: "completed time is not a finite number"},
		{task: domain.CompletedTask{CompletedTime: math.Inf(1), CompletionDate: ptr(now)}, want: "completed time is not a finite number"},
		{task: domain.CompletedTask{CompletedTime: 1, CompletionDate: ptr(now)}, want: ""},
	}
	for _, tc := range cases {
		if got := domain.SkipReason(tc.task); got != tc.want {
			t.Fatalf("SkipReason(%+v) = %q, want %q", tc.task, got, tc.want)
		}
	}
}

func TestBoundaryUsesLocalMidnight(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2024, 1, 31, 2, 0, 0, 0, time.UTC) // 07:00 local
	got := domain.Boundary(now, loc, domain.WindowToday)
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := domain.Boundary(now, loc, domain.WindowWeek); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("unexpected week boundary %v", got)
	}
}

func TestBucketsUnusedTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	b := domain.Boundaries(now, time.UTC, domain.Windows)
	buckets := domain.Buckets(map[int]float64{30: 10, 0: 30, 7: 20, 1: 2}, b)
	if len(buckets) != 4 || buckets[0].Key != 0 || buckets[3].Key != 30 {
		t.Fatalf("unexpected order %+v", buckets)
	}
	if buckets[0].Unused != 0 {
		t.Fatalf("over-logged day must clamp unused at 0, got %v", buckets[0].Unused)
	}
	if buckets[1].Unused != 22 || buckets[2].Capacity != 168 || buckets[3].Unused != 710 {
		t.Fatalf("unexpected buckets %+v", buckets)
	}
}
