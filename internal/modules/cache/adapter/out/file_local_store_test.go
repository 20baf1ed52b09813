package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cacheout "pti/internal/modules/cache/adapter/out"
	apperrors "pti/internal/platform/errors"
)

func TestFileLocalStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	first := cacheout.NewFileLocalStore(path)
	if _, ok, err := first.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key on missing file: ok=%v err=%v", ok, err)
	}
	if err := first.Set(ctx, "u1:time_spent", `{"0":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := cacheout.NewFileLocalStore(path)
	value, ok, err := second.Get(ctx, "u1:time_spent")
	if err != nil || !ok || value != `{"0":1}` {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
	if err := second.Remove(ctx, "u1:time_spent"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := second.Remove(ctx, "u1:time_spent"); err != nil {
		t.Fatalf("removing a missing key should be a no-op: %v", err)
	}
	if _, ok, _ := first.Get(ctx, "u1:time_spent"); ok {
		t.Fatalf("key should be removed for every reader")
	}
}

func TestFileLocalStoreReportsCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	_, _, err := cacheout.NewFileLocalStore(path).Get(context.Background(), "k")
	if !errors.Is(err, apperrors.ErrInvalidRecord) {
		t.Fatalf("corrupt file must surface ErrInvalidRecord, got %v", err)
	}
}

func TestFileLocalStoreWritesRecoverCorruptFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := cacheout.NewFileLocalStore(path)

	if err := store.Remove(ctx, "u1:time_spent"); err != nil {
		t.Fatalf("remove on corrupt file: %v", err)
	}
	if _, ok, err := store.Get(ctx, "u1:time_spent"); err != nil || ok {
		t.Fatalf("remove should reset the file: ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("rewrite corrupt file: %v", err)
	}
	if err := store.Set(ctx, "u1:time_spent", `{"0":2}`); err != nil {
		t.Fatalf("set on corrupt file: %v", err)
	}
	value, ok, err := store.Get(ctx, "u1:time_spent")
	if err != nil || !ok || value != `{"0":2}` {
		t.Fatalf("expected value after recovery, got %q ok=%v err=%v", value, ok, err)
	}
}
