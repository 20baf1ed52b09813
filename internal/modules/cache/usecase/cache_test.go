package usecase_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	cacheout "pti/internal/modules/cache/adapter/out"
	cachein "pti/internal/modules/cache/port/in"
	"pti/internal/modules/cache/service"
	"pti/internal/modules/cache/usecase"
	apperrors "pti/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk gone") }
func (failingStore) Remove(context.Context, string) error      { return errors.New("disk gone") }

func newCache(t *testing.T, clk *fakeClock) cachein.Usecase {
	t.Helper()
	store := cacheout.NewFileLocalStore(filepath.Join(t.TempDir(), "cache.json"))
	return usecase.NewInteractor(service.NewCacheService(store, clk, time.UTC, log.New(io.Discard, "", 0)))
}

func TestFreshnessExpiresOnNewCalendarDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2024, 1, 30, 23, 50, 0, 0, time.UTC)}
	c := newCache(t, clk)

	if c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("empty cache must not be fresh")
	}
	if err := c.MarkFreshForToday(ctx, "u1"); err != nil {
		t.Fatalf("mark fresh: %v", err)
	}
	if !c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("expected fresh right after marking")
	}
	if c.IsFreshForToday(ctx, "u2") {
		t.Fatalf("freshness must be scoped per user")
	}
	clk.now = time.Date(2024, 1, 31, 0, 5, 0, 0, time.UTC)
	if c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("expected stale on the next calendar day without clear")
	}
}

func TestTypedValuesRoundTripAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newCache(t, &fakeClock{now: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)})

	if err := c.SetTimeSpent(ctx, "u1", map[int]float64{0: 1, 7: 3.5, 30: 10}); err != nil {
		t.Fatalf("set time spent: %v", err)
	}
	if err := c.SetReport(ctx, "u1", map[string]float64{"Fitness": 1.5}); err != nil {
		t.Fatalf("set report: %v", err)
	}
	if err := c.SetDomainProgress(ctx, "u1", "d1", 30); err != nil {
		t.Fatalf("set domain progress: %v", err)
	}
	if err := c.SetDomainProgress(ctx, "u1", "d2", 75); err != nil {
		t.Fatalf("set domain progress: %v", err)
	}

	hours, ok := c.TimeSpent(ctx, "u1")
	if !ok || hours[7] != 3.5 || hours[30] != 10 {
		t.Fatalf("unexpected time spent %v (ok=%v)", hours, ok)
	}
	report, ok := c.Report(ctx, "u1")
	if !ok || report["Fitness"] != 1.5 {
		t.Fatalf("unexpected report %v (ok=%v)", report, ok)
	}
	progress := c.DomainProgress(ctx, "u1")
	if progress["d1"] != 30 || progress["d2"] != 75 {
		t.Fatalf("unexpected domain progress %v", progress)
	}
	if err := c.RemoveDomainProgress(ctx, "u1", "d1"); err != nil {
		t.Fatalf("remove domain progress: %v", err)
	}
	if err := c.RemoveDomainProgress(ctx, "u1", "missing"); err != nil {
		t.Fatalf("removing an unknown domain should be a no-op: %v", err)
	}
	progress = c.DomainProgress(ctx, "u1")
	if _, ok := progress["d1"]; ok || progress["d2"] != 75 {
		t.Fatalf("unexpected domain progress after remove %v", progress)
	}

	if err := c.MarkFreshForToday(ctx, "u1"); err != nil {
		t.Fatalf("mark fresh: %v", err)
	}
	if err := c.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := c.TimeSpent(ctx, "u1"); ok {
		t.Fatalf("time spent should be gone after clear")
	}
	if _, ok := c.Report(ctx, "u1"); ok {
		t.Fatalf("report should be gone after clear")
	}
	if c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("freshness marker should be gone after clear")
	}
}

func TestStorageFailuresAreNonFatalForReads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := usecase.NewInteractor(service.NewCacheService(failingStore{}, &fakeClock{now: time.Now()}, time.UTC, log.New(io.Discard, "", 0)))

	if c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("failing store must read as stale")
	}
	if _, ok := c.TimeSpent(ctx, "u1"); ok {
		t.Fatalf("failing store must read as absent")
	}
	if len(c.DomainProgress(ctx, "u1")) != 0 {
		t.Fatalf("failing store must read as empty progress")
	}
	if err := c.SetReport(ctx, "u1", map[string]float64{"x": 1}); err == nil {
		t.Fatalf("writes surface storage errors to the caller")
	}
}

func TestEmptyUserIsRejected(t *testing.T) {
	t.Parallel()
	c := newCache(t, &fakeClock{now: time.Now()})
	if err := c.MarkFreshForToday(context.Background(), ""); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if err := c.Clear(context.Background(), ""); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestClearRecoversCorruptCacheFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	clk := &fakeClock{now: time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC)}
	c := usecase.NewInteractor(service.NewCacheService(cacheout.NewFileLocalStore(path), clk, time.UTC, log.New(io.Discard, "", 0)))

	if err := c.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear on corrupt file: %v", err)
	}
	if err := c.MarkFreshForToday(ctx, "u1"); err != nil {
		t.Fatalf("mark fresh after clear: %v", err)
	}
	if !c.IsFreshForToday(ctx, "u1") {
		t.Fatalf("cache should work again after clear")
	}
}
