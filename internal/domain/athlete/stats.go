package athlete

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
	"github.com/scoutline/scoutline-api/internal/pkg/logger"
)

// viewsTTL bounds how long a cached count can lag behind PostgreSQL
const viewsTTL = 10 * time.Minute

// viewCache caches profile view counts. PostgreSQL stays the source of truth.
type viewCache interface {
	Get(ctx context.Context, id uuid.UUID) (n int, ok bool, err error)
	Set(ctx context.Context, id uuid.UUID, n int) error
}

type redisViewCache struct {
	client *redis.Client
}

func viewsKey(id uuid.UUID) string {
	return fmt.Sprintf("athlete:%s:views", id)
}

func (c *redisViewCache) Get(ctx context.Context, id uuid.UUID) (int, bool, error) {
	raw, err := c.client.Get(ctx, viewsKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *redisViewCache) Set(ctx context.Context, id uuid.UUID, n int) error {
	return c.client.Set(ctx, viewsKey(id), n, viewsTTL).Err()
}

// StatsStore serves the engagement counters behind the star rating.
// Every view is counted in PostgreSQL; Redis, when configured, only caches
// the latest count for reads.
type StatsStore struct {
	cache viewCache
	repo  Repository
}

// NewStatsStore creates a stats store. client may be nil.
func NewStatsStore(client *redis.Client, repo Repository) *StatsStore {
	s := &StatsStore{repo: repo}
	if client != nil {
		s.cache = &redisViewCache{client: client}
	}
	return s
}

// IncrementViews records one profile view and returns the new count
func (s *StatsStore) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	n, err := s.repo.IncrementProfileViews(ctx, id)
	if err != nil {
		return 0, err
	}
	s.cacheViews(ctx, id, n)
	return n, nil
}

// Views returns the current profile view count
func (s *StatsStore) Views(ctx context.Context, id uuid.UUID) (int, error) {
	if s.cache != nil {
		n, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.LogWarn(ctx, "View cache unavailable, reading views from PostgreSQL", "athlete_id", id, "error", err.Error())
		} else if ok {
			return n, nil
		}
	}

	n, err := s.repo.ProfileViews(ctx, id)
	if err != nil {
		return 0, err
	}
	s.cacheViews(ctx, id, n)
	return n, nil
}

func (s *StatsStore) cacheViews(ctx context.Context, id uuid.UUID, n int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, id, n); err != nil {
		logger.LogWarn(ctx, "Failed to cache profile views", "athlete_id", id, "error", err.Error())
	}
}

// Engagement gathers the three counters concurrently
func (s *StatsStore) Engagement(ctx context.Context, id uuid.UUID) (completion.EngagementStats, error) {
	var stats completion.EngagementStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.ProfileViews, err = s.Views(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.ContactUnlocks, err = s.repo.CountContactUnlocks(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.MessagingOperators, err = s.repo.CountMessagingOperators(ctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return completion.EngagementStats{}, err
	}
	return stats, nil
}
