package repository

import (
	"context"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
)

// UserRepository defines persistence operations over users and their
// per-user history and favorites subcollections.
type UserRepository interface {
	// GetByEmail retrieves the first user matching email exactly
	// (case-sensitive). Returns ErrUserNotFound if no user matches.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create persists a new user. Returns ErrEmailTaken when a user
	// with the same email already exists. The pre-check and the write
	// are not atomic; concurrent registrations can race.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// AddHistory upserts the (user, video) watch-history entry keyed by
	// videoID, bumping its timestamp. Repeat views never duplicate.
	AddHistory(ctx context.Context, userID, videoID string) error

	// GetHistory returns up to limit watched videos, most recent first.
	// Pointers to videos that no longer resolve are silently dropped.
	GetHistory(ctx context.Context, userID string, limit int) ([]model.WatchedVideo, error)

	// GetFavorites returns all favorited videos, unordered. Pointers to
	// videos that no longer resolve are silently dropped.
	GetFavorites(ctx context.Context, userID string) ([]model.Video, error)

	// ToggleFavorite favorites the video if absent and unfavorites it
	// if present. Returns true when the video is now favorited.
	ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error)
}
