package out

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pti/internal/modules/activity/domain"
	activityout "pti/internal/modules/activity/port/out"
	apperrors "pti/internal/platform/errors"
)

// FileTimerStore keeps each user's running timer in its own JSON file.
type FileTimerStore struct {
	dir string
}

func NewFileTimerStore(dataDir string) activityout.TimerStore {
	return &FileTimerStore{dir: filepath.Join(dataDir, "timers")}
}

// path hex-encodes the user id so distinct ids never share a file.
func (s *FileTimerStore) path(userID string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(userID))+".json")
}

func (s *FileTimerStore) SaveRunning(_ context.Context, userID string, running domain.RunningActivity) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create timer dir: %w", err)
	}
	payload, err := json.MarshalIndent(running, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal running timer: %w", err)
	}
	if err := os.WriteFile(s.path(userID), payload, 0o644); err != nil {
		return fmt.Errorf("write running timer: %w", err)
	}
	return nil
}

func (s *FileTimerStore) LoadRunning(_ context.Context, userID string) (domain.RunningActivity, error) {
	payload, err := os.ReadFile(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RunningActivity{}, apperrors.ErrNoRunningTimer
		}
		return domain.RunningActivity{}, fmt.Errorf("read running timer: %w", err)
	}
	running := domain.RunningActivity{}
	if err := json.Unmarshal(payload, &running); err != nil {
		return domain.RunningActivity{}, fmt.Errorf("decode running timer: %w: %v", apperrors.ErrInvalidRecord, err)
	}
	if running.StartedAt.IsZero() {
		return domain.RunningActivity{}, apperrors.ErrNoRunningTimer
	}
	return running, nil
}

func (s *FileTimerStore) ClearRunning(_ context.Context, userID string) error {
	if err := os.Remove(s.path(userID)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear running timer: %w", err)
	}
	return nil
}
