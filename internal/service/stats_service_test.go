package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumatrix/edumatrix-api/internal/models"
	appErrors "github.com/edumatrix/edumatrix-api/pkg/errors"
)

type mockStatsRepo struct {
	stats    models.RecordStats
	collects int
}

func (m *mockStatsRepo) Collect(ctx context.Context) (*models.RecordStats, error) {
	m.collects++
	stats := m.stats
	return &stats, nil
}

type mockStatsCache struct {
	entries map[string][]byte
	sets    int
}

func (m *mockStatsCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockStatsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *mockStatsCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func TestStatsServiceGetCachesResult(t *testing.T) {
	repo := &mockStatsRepo{stats: models.RecordStats{Students: 10, Professors: 3, Courses: 5, Enrollments: 14, AverageGPA: 3.2}}
	cache := &mockStatsCache{}
	svc := NewStatsService(repo, cache, time.Minute, nil)

	stats, hit, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 10, stats.Students)
	assert.Equal(t, 1, repo.collects)
	assert.Equal(t, 1, cache.sets)

	stats, hit, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 10, stats.Students)
	assert.Equal(t, 1, repo.collects)
}

func TestStatsServiceInvalidateForcesRefresh(t *testing.T) {
	repo := &mockStatsRepo{stats: models.RecordStats{Students: 10}}
	cache := &mockStatsCache{}
	svc := NewStatsService(repo, cache, time.Minute, nil)

	_, _, err := svc.Get(context.Background())
	require.NoError(t, err)

	svc.Invalidate(context.Background())

	_, hit, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.collects)
}

func TestStatsServiceWithoutCache(t *testing.T) {
	repo := &mockStatsRepo{stats: models.RecordStats{Students: 4}}
	svc := NewStatsService(repo, nil, 0, nil)

	stats, hit, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, stats.Students)
}
