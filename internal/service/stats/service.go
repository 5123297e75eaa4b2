package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

const statsKeyPrefix = "stats:"

type StatsRepository interface {
	GetStats(userID int64) (domain.GameStats, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Service reads per-user stats through an optional cache. Writes happen in
// the game repository; callers invalidate afterwards.
type Service struct {
	repo  StatsRepository
	cache CacheRepository // Optional, can be nil
	ttl   time.Duration
}

func NewService(repo StatsRepository, cache CacheRepository, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

func statsKey(userID int64) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, userID)
}

func (s *Service) GetStats(userID int64) (domain.GameStats, error) {
	if s.cache != nil {
		if stats, ok := s.getFromCache(userID); ok {
			return stats, nil
		}
	}

	stats, err := s.repo.GetStats(userID)
	if err != nil {
		return domain.GameStats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	if s.cache != nil {
		data, err := json.Marshal(stats)
		if err == nil {
			if err := s.cache.Set(context.Background(), statsKey(userID), data, s.ttl); err != nil {
				log.Printf("[STATS] Warning: Failed to cache stats for user %d: %v", userID, err)
			}
		}
	}
	return stats, nil
}

func (s *Service) getFromCache(userID int64) (domain.GameStats, bool) {
	data, err := s.cache.Get(context.Background(), statsKey(userID))
	if err != nil || data == "" {
		return domain.GameStats{}, false
	}
	var stats domain.GameStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return domain.GameStats{}, false
	}
	return stats, true
}

// Invalidate drops the cached copy after a game was saved.
func (s *Service) Invalidate(userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(context.Background(), statsKey(userID)); err != nil {
		log.Printf("[STATS] Warning: Failed to invalidate stats for user %d: %v", userID, err)
	}
}
