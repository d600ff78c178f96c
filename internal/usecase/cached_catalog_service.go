package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/cache"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/metrics"
)

// CachedCatalogServiceConfig holds the per-surface cache TTLs.
type CachedCatalogServiceConfig struct {
	FeedTTL     time.Duration
	VideoTTL    time.Duration
	TrendingTTL time.Duration
}

// DefaultCachedCatalogServiceConfig returns the default TTLs.
func DefaultCachedCatalogServiceConfig() CachedCatalogServiceConfig {
	return CachedCatalogServiceConfig{
		FeedTTL:     5 * time.Minute,
		VideoTTL:    time.Hour,
		TrendingTTL: 2 * time.Minute,
	}
}

// cachedCatalogService wraps CatalogService with cache-aside reads for
// the feed, single-video, and trending surfaces. Search and writes pass
// through uncached.
//
// Writers do not invalidate cached entries; entries self-expire, so
// readers may observe stale data for up to the configured TTL. Cache
// failures are logged and treated as misses so the caller never sees
// them.
type cachedCatalogService struct {
	delegate CatalogService
	cache    cache.Cache
	sfGroup  singleflight.Group

	cfg CachedCatalogServiceConfig
}

// NewCachedCatalogService decorates delegate with caching.
func NewCachedCatalogService(
	delegate CatalogService,
	c cache.Cache,
	cfg CachedCatalogServiceConfig,
) CatalogService {
	return &cachedCatalogService{
		delegate: delegate,
		cache:    c,
		cfg:      cfg,
	}
}

func (s *cachedCatalogService) Feed(ctx context.Context, category string, limit int) ([]model.Video, error) {
	key := feedKey(category, limit)
	return listThroughCache(ctx, s, key, metrics.KeyKindFeed, s.cfg.FeedTTL, func() ([]model.Video, error) {
		return s.delegate.Feed(ctx, category, limit)
	})
}

func (s *cachedCatalogService) Get(ctx context.Context, id string) (*model.Video, error) {
	key := videoKey(id)

	result, err, _ := s.sfGroup.Do(key, func() (any, error) {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var video model.Video
			if err := json.Unmarshal(data, &video); err == nil {
				metrics.CacheRequestsTotal.WithLabelValues(metrics.KeyKindVideo, metrics.CacheHit).Inc()
				return &video, nil
			}
			slog.Warn("discarding undecodable cache entry", "key", key, "error", err)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			metrics.CacheRequestsTotal.WithLabelValues(metrics.KeyKindVideo, metrics.CacheError).Inc()
			slog.Warn("cache get failed, falling back to store", "key", key, "error", err)
		}
		metrics.CacheRequestsTotal.WithLabelValues(metrics.KeyKindVideo, metrics.CacheMiss).Inc()

		video, err := s.delegate.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		s.writeThrough(ctx, key, video, s.cfg.VideoTTL)
		return video, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

func (s *cachedCatalogService) Create(ctx context.Context, video *model.Video) (string, error) {
	return s.delegate.Create(ctx, video)
}

// TrackView delegates without touching the cache: cached feed and
// detail entries keep their stale view counts until TTL expiry.
func (s *cachedCatalogService) TrackView(ctx context.Context, id string) error {
	return s.delegate.TrackView(ctx, id)
}

func (s *cachedCatalogService) Search(ctx context.Context, query string, limit int) ([]model.Video, error) {
	return s.delegate.Search(ctx, query, limit)
}

func (s *cachedCatalogService) Trending(ctx context.Context, limit int) ([]model.Video, error) {
	key := trendingKey(limit)
	return listThroughCache(ctx, s, key, metrics.KeyKindTrending, s.cfg.TrendingTTL, func() ([]model.Video, error) {
		return s.delegate.Trending(ctx, limit)
	})
}

// listThroughCache implements cache-aside for list-shaped reads, with
// singleflight coalescing concurrent misses for the same key.
func listThroughCache(
	ctx context.Context,
	s *cachedCatalogService,
	key, keyKind string,
	ttl time.Duration,
	fetch func() ([]model.Video, error),
) ([]model.Video, error) {
	result, err, _ := s.sfGroup.Do(key, func() (any, error) {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var videos []model.Video
			if err := json.Unmarshal(data, &videos); err == nil {
				metrics.CacheRequestsTotal.WithLabelValues(keyKind, metrics.CacheHit).Inc()
				return videos, nil
			}
			slog.Warn("discarding undecodable cache entry", "key", key, "error", err)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			metrics.CacheRequestsTotal.WithLabelValues(keyKind, metrics.CacheError).Inc()
			slog.Warn("cache get failed, falling back to store", "key", key, "error", err)
		}
		metrics.CacheRequestsTotal.WithLabelValues(keyKind, metrics.CacheMiss).Inc()

		videos, err := fetch()
		if err != nil {
			return nil, err
		}

		s.writeThrough(ctx, key, videos, ttl)
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Video), nil
}

// writeThrough populates the cache after a store read. Failures are
// logged, never propagated.
func (s *cachedCatalogService) writeThrough(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to serialize cache entry", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		slog.Warn("failed to populate cache", "key", key, "error", err)
	}
}

// Cache key composition is stable and deterministic; other deployments
// of this API share entries only if these formats match.

func feedKey(category string, limit int) string {
	if category == "" {
		category = "all"
	}
	return "feed:" + category + ":" + strconv.Itoa(limit)
}

func videoKey(id string) string {
	return "video:" + id
}

func trendingKey(limit int) string {
	return "trending:" + strconv.Itoa(limit)
}
