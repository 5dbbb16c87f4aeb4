package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/edumatrix/edumatrix-api/internal/models"
	appErrors "github.com/edumatrix/edumatrix-api/pkg/errors"
)

const statsCacheKey = "edumatrix:stats"

type statsRepository interface {
	Collect(ctx context.Context) (*models.RecordStats, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StatsService serves registry statistics with a Redis read-through cache.
type StatsService struct {
	repo   statsRepository
	cache  statsCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService constructs the stats service.
func NewStatsService(repo statsRepository, cache statsCache, ttl time.Duration, logger *zap.Logger) *StatsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Get returns current statistics and whether they came from cache.
func (s *StatsService) Get(ctx context.Context) (*models.RecordStats, bool, error) {
	if s.cache != nil {
		var cached models.RecordStats
		err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

// Invalidate drops the cached statistics snapshot.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
