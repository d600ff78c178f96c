package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/cache"
)

// mockCatalogService provides a configurable mock for CatalogService
// with call counters for cache-aside assertions.
type mockCatalogService struct {
	feedFn      func(ctx context.Context, category string, limit int) ([]model.Video, error)
	getFn       func(ctx context.Context, id string) (*model.Video, error)
	createFn    func(ctx context.Context, video *model.Video) (string, error)
	trackViewFn func(ctx context.Context, id string) error
	searchFn    func(ctx context.Context, query string, limit int) ([]model.Video, error)
	trendingFn  func(ctx context.Context, limit int) ([]model.Video, error)

	feedCount     atomic.Int32
	getCount      atomic.Int32
	trendingCount atomic.Int32
}

func (m *mockCatalogService) Feed(ctx context.Context, category string, limit int) ([]model.Video, error) {
	m.feedCount.Add(1)
	if m.feedFn != nil {
		return m.feedFn(ctx, category, limit)
	}
	return nil, nil
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*model.Video, error) {
	m.getCount.Add(1)
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCatalogService) Create(ctx context.Context, video *model.Video) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return "", nil
}

func (m *mockCatalogService) TrackView(ctx context.Context, id string) error {
	if m.trackViewFn != nil {
		return m.trackViewFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogService) Search(ctx context.Context, query string, limit int) ([]model.Video, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockCatalogService) Trending(ctx context.Context, limit int) ([]model.Video, error) {
	m.trendingCount.Add(1)
	if m.trendingFn != nil {
		return m.trendingFn(ctx, limit)
	}
	return nil, nil
}

// mockCache is an in-memory Cache with injectable failures.
type mockCache struct {
	mu    sync.RWMutex
	data  map[string][]byte
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error

	lastTTL time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}
