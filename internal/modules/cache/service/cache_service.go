package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pti/internal/modules/cache/domain"
	cacheout "pti/internal/modules/cache/port/out"
	"pti/internal/platform/clock"
	apperrors "pti/internal/platform/errors"
)

type CacheService struct {
	store  cacheout.LocalStore
	clock  clock.Clock
	loc    *time.Location
	logger *log.Logger
}

func NewCacheService(store cacheout.LocalStore, clk clock.Clock, loc *time.Location, logger *log.Logger) *CacheService {
	return &CacheService{store: store, clock: clk, loc: loc, logger: logger}
}

func (s *CacheService) Get(ctx context.Context, userID, key string) (string, bool, error) {
	if err := apperrors.RequireUser(userID); err != nil {
		return "", false, err
	}
	return s.store.Get(ctx, domain.ScopedKey(userID, key))
}

func (s *CacheService) Set(ctx context.Context, userID, key, value string) error {
	if err := apperrors.RequireUser(userID); err != nil {
		return err
	}
	return s.store.Set(ctx, domain.ScopedKey(userID, key), value)
}

// IsFreshForToday reports whether the last-updated marker equals today's
// calendar date. A new day turns it false without any explicit clear.
func (s *CacheService) IsFreshForToday(ctx context.Context, userID string) bool {
	stamp, ok, err := s.Get(ctx, userID, domain.KeyLastUpdated)
	if err != nil {
		s.logger.Printf("warning: read freshness marker: %v", err)
		return false
	}
	return ok && stamp == clock.DateKey(s.clock.Now(), s.loc)
}

func (s *CacheService) MarkFreshForToday(ctx context.Context, userID string) error {
	return s.Set(ctx, userID, domain.KeyLastUpdated, clock.DateKey(s.clock.Now(), s.loc))
}

// GetJSON decodes the value under key into dst. A miss, a storage failure or a
// corrupt value all report false.
func (s *CacheService) GetJSON(ctx context.Context, userID, key string, dst any) bool {
	raw, ok, err := s.Get(ctx, userID, key)
	if err != nil {
		s.logger.Printf("warning: read cache %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Printf("warning: decode cache %s: %v", key, err)
		return false
	}
	return true
}

func (s *CacheService) SetJSON(ctx context.Context, userID, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", key, err)
	}
	return s.Set(ctx, userID, key, string(payload))
}

func (s *CacheService) Clear(ctx context.Context, userID string) error {
	if err := apperrors.RequireUser(userID); err != nil {
		return err
	}
	for _, key := range domain.AllKeys {
		if err := s.store.Remove(ctx, domain.ScopedKey(userID, key)); err != nil {
			return err
		}
	}
	return nil
}
