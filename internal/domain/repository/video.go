package repository

import (
	"context"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
)

// VideoRepository defines persistence operations over the video catalog.
// Implementations are provided by the infrastructure layer.
type VideoRepository interface {
	// List returns up to limit videos, filtered by category when it is
	// non-blank. Ordering is store-default and not guaranteed stable.
	List(ctx context.Context, category string, limit int) ([]model.Video, error)

	// GetByID retrieves a video by id.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id string) (*model.Video, error)

	// Create persists a video and returns its id. A caller-supplied id
	// is used as the document key with upsert semantics; otherwise the
	// store assigns one.
	Create(ctx context.Context, video *model.Video) (string, error)

	// IncrementViews atomically adds one to the stored view counter.
	// Returns ErrVideoNotFound if the video does not exist.
	IncrementViews(ctx context.Context, id string) error

	// Search returns up to limit videos whose title starts with the
	// exact, case-sensitive query string. Not full-text search.
	Search(ctx context.Context, query string, limit int) ([]model.Video, error)

	// Trending returns up to limit videos flagged trending, filtered
	// at the store.
	Trending(ctx context.Context, limit int) ([]model.Video, error)
}
