package bootstrap

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	activitydto "pti/internal/modules/activity/dto"
	plannerdto "pti/internal/modules/planner/dto"
	timespentdto "pti/internal/modules/timespent/dto"
	"pti/internal/platform/config"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testConfig(dir string) config.Config {
	return config.Config{
		DataDir:  dir,
		Timezone: "UTC",
		Store:    config.StoreConfig{Driver: config.StoreDriverSQLite, DSN: filepath.Join(dir, "pti.db")},
		Cache:    config.CacheConfig{Backend: config.CacheBackendFile, Path: filepath.Join(dir, "cache.json")},
		Identity: config.IdentityConfig{
			UserID:            "u1",
			ClientSecretsFile: filepath.Join(dir, "client_secret.json"),
			CredentialsFile:   filepath.Join(dir, "credentials.json"),
			RedirectPort:      6789,
		},
		Report: config.ReportConfig{WindowDays: 30, PageSize: 10, ExportDir: filepath.Join(dir, "reports")},
	}
}

func TestNewWiresCompletionIntoReportsAndSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	app, err := New(ctx, testConfig(t.TempDir()), Options{
		Logger: log.New(io.Discard, "", 0),
		Prompt: io.Discard,
		Clock:  fixedClock{now: now},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	userID, err := app.IdentityCLI.UserID(ctx)
	if err != nil || userID != "u1" {
		t.Fatalf("user id = %q, %v", userID, err)
	}

	d, err := app.PlannerCLI.AddDomain(ctx, plannerdto.CreateDomainInput{UserID: userID, Name: "Fitness", Color: "#a6e3a1"})
	if err != nil {
		t.Fatalf("add domain: %v", err)
	}
	target, err := app.PlannerCLI.AddTarget(ctx, plannerdto.AddTargetInput{UserID: userID, DomainID: d.ID, Name: "5K", Deadline: "2026-06-01"})
	if err != nil {
		t.Fatalf("add target: %v", err)
	}
	task, err := app.PlannerCLI.AddTask(ctx, plannerdto.AddTaskInput{UserID: userID, TargetID: target.ID, Name: "Intervals", EstimatedTime: 2})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	done, err := app.PlannerCLI.CompleteTask(ctx, plannerdto.CompleteTaskInput{UserID: userID, TaskID: task.ID})
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if !done.ActivityLogged || done.Domain.Progress != 100 {
		t.Fatalf("unexpected completion: %+v", done)
	}

	report, err := app.ActivityCLI.Report(ctx, activitydto.ReportInput{UserID: userID, Refresh: true})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Empty || report.Hours["Fitness"] != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	snapshot, err := app.TimeSpentCLI.Snapshot(ctx, timespentdto.SnapshotInput{UserID: userID})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Buckets) == 0 || snapshot.Buckets[0].Key != 0 || snapshot.Buckets[0].Hours != 2 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if !app.CacheCLI.IsFreshForToday(ctx, userID) {
		t.Fatal("expected cache to be fresh after snapshot")
	}
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir())
	cfg.Timezone = "Nowhere/Atlantis"
	if _, err := New(context.Background(), cfg, Options{Logger: log.New(io.Discard, "", 0)}); err == nil {
		t.Fatal("expected timezone error")
	}
}
