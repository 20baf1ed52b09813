package out

import (
	"context"
	"errors"
	"testing"
	"time"

	"pti/internal/modules/activity/domain"
	apperrors "pti/internal/platform/errors"
)

func TestFileTimerStoreKeepsSimilarUserIDsApart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewFileTimerStore(t.TempDir())
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	if err := store.SaveRunning(ctx, "Alice.B", domain.RunningActivity{Name: "alice", StartedAt: started}); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, other := range []string{"alice-b", "alice.b", "ALICE.B", "Alice B"} {
		if got, err := store.LoadRunning(ctx, other); !errors.Is(err, apperrors.ErrNoRunningTimer) {
			t.Fatalf("user %q sees timer %+v (err=%v)", other, got, err)
		}
	}
	if err := store.ClearRunning(ctx, "alice-b"); err != nil {
		t.Fatalf("clear other user: %v", err)
	}

	got, err := store.LoadRunning(ctx, "Alice.B")
	if err != nil {
		t.Fatalf("load owner: %v", err)
	}
	if got.Name != "alice" || !got.StartedAt.Equal(started) {
		t.Fatalf("unexpected timer: %+v", got)
	}
}
