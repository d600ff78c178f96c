package usecase

import (
	"context"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
)

// CatalogService defines read and write operations over the video
// catalog.
type CatalogService interface {
	// Feed returns up to limit videos, filtered by category when it is
	// non-blank.
	Feed(ctx context.Context, category string, limit int) ([]model.Video, error)

	// Get retrieves a single video by id.
	Get(ctx context.Context, id string) (*model.Video, error)

	// Create persists a video and returns its id. Caller-supplied ids
	// upsert.
	Create(ctx context.Context, video *model.Video) (string, error)

	// TrackView atomically increments the view counter.
	TrackView(ctx context.Context, id string) error

	// Search returns videos whose title starts with the case-sensitive
	// query string.
	Search(ctx context.Context, query string, limit int) ([]model.Video, error)

	// Trending returns up to limit videos flagged trending.
	Trending(ctx context.Context, limit int) ([]model.Video, error)
}

type catalogService struct {
	repo repository.VideoRepository
}

// NewCatalogService creates a CatalogService over repo.
func NewCatalogService(repo repository.VideoRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Feed(ctx context.Context, category string, limit int) ([]model.Video, error) {
	return s.repo.List(ctx, category, limit)
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Video, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, video *model.Video) (string, error) {
	return s.repo.Create(ctx, video)
}

func (s *catalogService) TrackView(ctx context.Context, id string) error {
	return s.repo.IncrementViews(ctx, id)
}

func (s *catalogService) Search(ctx context.Context, query string, limit int) ([]model.Video, error) {
	return s.repo.Search(ctx, query, limit)
}

func (s *catalogService) Trending(ctx context.Context, limit int) ([]model.Video, error) {
	return s.repo.Trending(ctx, limit)
}
