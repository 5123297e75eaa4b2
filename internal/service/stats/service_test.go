package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

type fakeRepo struct {
	stats map[int64]domain.GameStats
	calls int
	err   error
}

func (r *fakeRepo) GetStats(userID int64) (domain.GameStats, error) {
	r.calls++
	if r.err != nil {
		return domain.GameStats{}, r.err
	}
	return r.stats[userID], nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (c *memoryCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestGetStatsReadsThroughCache(t *testing.T) {
	repo := &fakeRepo{stats: map[int64]domain.GameStats{1: {Wins: 3, Losses: 1}}}
	svc := NewService(repo, newMemoryCache(), time.Minute)

	for i := 0; i < 3; i++ {
		got, err := svc.GetStats(1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Wins != 3 || got.Losses != 1 {
			t.Fatalf("unexpected stats %+v", got)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.calls)
	}

	repo.stats[1] = domain.GameStats{Wins: 4, Losses: 1}
	svc.Invalidate(1)
	got, _ := svc.GetStats(1)
	if got.Wins != 4 || repo.calls != 2 {
		t.Fatalf("invalidate must force a reload, got %+v after %d calls", got, repo.calls)
	}
}

func TestGetStatsWithoutCache(t *testing.T) {
	repo := &fakeRepo{stats: map[int64]domain.GameStats{}}
	svc := NewService(repo, nil, time.Minute)

	got, err := svc.GetStats(9)
	if err != nil {
		t.Fatal(err)
	}
	if got != (domain.GameStats{}) {
		t.Fatalf("new user should have zero stats, got %+v", got)
	}
	svc.Invalidate(9)

	repo.err = errors.New("db down")
	if _, err := svc.GetStats(9); err == nil {
		t.Fatal("repository errors must surface")
	}
}
