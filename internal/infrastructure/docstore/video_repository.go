package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/metrics"
)

const videosCollection = "videos"

// searchUpperBound closes the prefix range for title search. It is the
// highest code point in the Unicode private use area, so every title
// starting with the query sorts at or below query+searchUpperBound.
const searchUpperBound = "\uf8ff"

// VideoRepository implements repository.VideoRepository over a Store.
type VideoRepository struct {
	store Store
}

// NewVideoRepository creates a video repository backed by store.
func NewVideoRepository(store Store) *VideoRepository {
	return &VideoRepository{store: store}
}

func (r *VideoRepository) List(ctx context.Context, category string, limit int) ([]model.Video, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, videosCollection).Inc()

	q := Query{Limit: limit}
	if category != "" {
		q.Filters = append(q.Filters, Filter{Field: "category", Op: OpEqual, Value: category})
	}

	docs, err := r.store.List(ctx, videosCollection, q)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videosFromDocs(docs), nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryGet, videosCollection).Inc()

	doc, err := r.store.Get(ctx, videosCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	video := videoFromDoc(doc)
	return &video, nil
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) (string, error) {
	if err := video.Validate(); err != nil {
		return "", err
	}

	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryWrite, videosCollection).Inc()

	data := videoData(video)
	if video.ID != "" {
		// Caller-supplied ids upsert: a second create overwrites.
		if err := r.store.Set(ctx, videosCollection, video.ID, data); err != nil {
			return "", fmt.Errorf("create video: %w", err)
		}
		return video.ID, nil
	}

	id, err := r.store.Create(ctx, videosCollection, data)
	if err != nil {
		return "", fmt.Errorf("create video: %w", err)
	}
	return id, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryWrite, videosCollection).Inc()

	if err := r.store.Increment(ctx, videosCollection, id, "views", 1); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return repository.ErrVideoNotFound
		}
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *VideoRepository) Search(ctx context.Context, query string, limit int) ([]model.Video, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, videosCollection).Inc()

	// Case-sensitive prefix match on title via a bounded range scan.
	q := Query{
		Filters: []Filter{
			{Field: "title", Op: OpGTE, Value: query},
			{Field: "title", Op: OpLTE, Value: query + searchUpperBound},
		},
		Limit: limit,
	}

	docs, err := r.store.List(ctx, videosCollection, q)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	return videosFromDocs(docs), nil
}

func (r *VideoRepository) Trending(ctx context.Context, limit int) ([]model.Video, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, videosCollection).Inc()

	q := Query{
		Filters: []Filter{{Field: "trending", Op: OpEqual, Value: true}},
		Limit:   limit,
	}

	docs, err := r.store.List(ctx, videosCollection, q)
	if err != nil {
		return nil, fmt.Errorf("list trending videos: %w", err)
	}
	return videosFromDocs(docs), nil
}

func videoData(v *model.Video) map[string]any {
	return map[string]any{
		"title":        v.Title,
		"description":  v.Description,
		"thumbnailUrl": v.ThumbnailURL,
		"videoUrl":     v.VideoURL,
		"category":     v.Category,
		"duration":     v.Duration,
		"trending":     v.Trending,
		"views":        v.Views,
		"releasedAt":   v.ReleasedAt,
	}
}

func videoFromDoc(doc *Document) model.Video {
	return model.Video{
		ID:           doc.ID,
		Title:        asString(doc.Data, "title"),
		Description:  asString(doc.Data, "description"),
		ThumbnailURL: asString(doc.Data, "thumbnailUrl"),
		VideoURL:     asString(doc.Data, "videoUrl"),
		Category:     asString(doc.Data, "category"),
		Duration:     asString(doc.Data, "duration"),
		Trending:     asBool(doc.Data, "trending"),
		Views:        asInt64(doc.Data["views"]),
		ReleasedAt:   asString(doc.Data, "releasedAt"),
	}
}

func videosFromDocs(docs []Document) []model.Video {
	videos := make([]model.Video, 0, len(docs))
	for i := range docs {
		videos = append(videos, videoFromDoc(&docs[i]))
	}
	return videos
}
