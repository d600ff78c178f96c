package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
	"github.com/cinephile-dev/cinephile/internal/infrastructure/metrics"
)

const usersCollection = "users"

// UserRepository implements repository.UserRepository over a Store.
// History and favorites live in per-user subcollections keyed by video
// id, so repeat writes overwrite rather than duplicate.
type UserRepository struct {
	store  Store
	videos repository.VideoRepository
}

// NewUserRepository creates a user repository backed by store. videos
// resolves history and favorite pointers to full video records.
func NewUserRepository(store Store, videos repository.VideoRepository) *UserRepository {
	return &UserRepository{store: store, videos: videos}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, usersCollection).Inc()

	q := Query{
		Filters: []Filter{{Field: "email", Op: OpEqual, Value: email}},
		Limit:   1,
	}

	docs, err := r.store.List(ctx, usersCollection, q)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrUserNotFound
	}

	user := userFromDoc(&docs[0])
	return &user, nil
}

// Create persists a new user after an advisory uniqueness pre-check on
// email. The check and the write are separate store calls; two
// concurrent registrations for the same email can both pass the check.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	_, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return nil, repository.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryWrite, usersCollection).Inc()

	id, err := r.store.Create(ctx, usersCollection, userData(user))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) AddHistory(ctx context.Context, userID, videoID string) error {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryWrite, "history").Inc()

	data := map[string]any{
		"watchedAt": time.Now().UTC(),
		"videoId":   videoID,
	}
	if err := r.store.Set(ctx, historyPath(userID), videoID, data); err != nil {
		return fmt.Errorf("add history: %w", err)
	}
	return nil
}

func (r *UserRepository) GetHistory(ctx context.Context, userID string, limit int) ([]model.WatchedVideo, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, "history").Inc()

	q := Query{OrderBy: "watchedAt", Desc: true, Limit: limit}
	docs, err := r.store.List(ctx, historyPath(userID), q)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	watched := make([]model.WatchedVideo, 0, len(docs))
	for i := range docs {
		video, err := r.videos.GetByID(ctx, asString(docs[i].Data, "videoId"))
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				// Orphaned pointer; the video was removed.
				continue
			}
			return nil, err
		}
		watched = append(watched, model.WatchedVideo{
			Video:     *video,
			WatchedAt: asTime(docs[i].Data, "watchedAt"),
		})
	}
	return watched, nil
}

func (r *UserRepository) GetFavorites(ctx context.Context, userID string) ([]model.Video, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryList, "favorites").Inc()

	docs, err := r.store.List(ctx, favoritesPath(userID), Query{})
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	videos := make([]model.Video, 0, len(docs))
	for i := range docs {
		video, err := r.videos.GetByID(ctx, docs[i].ID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				continue
			}
			return nil, err
		}
		videos = append(videos, *video)
	}
	return videos, nil
}

// ToggleFavorite is check-then-write: concurrent toggles for the same
// (user, video) can interleave. Accepted; see DESIGN.md.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error) {
	metrics.StoreQueriesTotal.WithLabelValues(metrics.QueryWrite, "favorites").Inc()

	_, err := r.store.Get(ctx, favoritesPath(userID), videoID)
	if err == nil {
		if err := r.store.Delete(ctx, favoritesPath(userID), videoID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	data := map[string]any{
		"addedAt": time.Now().UTC(),
		"videoId": videoID,
	}
	if err := r.store.Set(ctx, favoritesPath(userID), videoID, data); err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}

func historyPath(userID string) string {
	return usersCollection + "/" + userID + "/history"
}

func favoritesPath(userID string) string {
	return usersCollection + "/" + userID + "/favorites"
}

func userData(u *model.User) map[string]any {
	return map[string]any{
		"email":          u.Email,
		"displayName":    u.DisplayName,
		"hashedPassword": u.HashedPassword,
		"disabled":       u.Disabled,
		"createdAt":      u.CreatedAt,
	}
}

func userFromDoc(doc *Document) model.User {
	return model.User{
		ID:             doc.ID,
		Email:          asString(doc.Data, "email"),
		DisplayName:    asString(doc.Data, "displayName"),
		HashedPassword: asString(doc.Data, "hashedPassword"),
		Disabled:       asBool(doc.Data, "disabled"),
		CreatedAt:      asTime(doc.Data, "createdAt"),
	}
}
