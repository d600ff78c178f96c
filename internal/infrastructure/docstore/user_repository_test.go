package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
)

func newUserRepo(t *testing.T) (*UserRepository, *VideoRepository, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	videos := NewVideoRepository(store)
	return NewUserRepository(store, videos), videos, store
}

func TestUserRepository_Create_And_GetByEmail(t *testing.T) {
	repo, _, _ := newUserRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.User{
		Email:          "user@test.com",
		DisplayName:    "Test User",
		HashedPassword: "$2a$10$fake",
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a store-assigned id")
	}

	got, err := repo.GetByEmail(ctx, "user@test.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID || got.Email != "user@test.com" || got.HashedPassword != "$2a$10$fake" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, _, _ := newUserRepo(t)
	ctx := context.Background()

	user := model.User{Email: "user@test.com", HashedPassword: "h"}
	if _, err := repo.Create(ctx, &user); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	if _, err := repo.Create(ctx, &user); !errors.Is(err, repository.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_GetByEmail_CaseSensitive(t *testing.T) {
	repo, _, _ := newUserRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &model.User{Email: "User@test.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "user@test.com"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("email match must be exact, got %v", err)
	}
}

func TestUserRepository_History_UpsertsAndOrders(t *testing.T) {
	repo, videos, store := newUserRepo(t)
	ctx := context.Background()

	for _, id := range []string{"v1", "v2"} {
		if _, err := videos.Create(ctx, &model.Video{ID: id, Title: "Video " + id}); err != nil {
			t.Fatalf("seed video: %v", err)
		}
	}

	if err := repo.AddHistory(ctx, "u1", "v1"); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if err := repo.AddHistory(ctx, "u1", "v2"); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	// Rewatching v1 bumps its timestamp instead of duplicating.
	if err := repo.AddHistory(ctx, "u1", "v1"); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}

	docs, err := store.List(ctx, "users/u1/history", Query{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("history has %d entries, want 2 (keyed by video id)", len(docs))
	}

	watched, err := repo.GetHistory(ctx, "u1", 20)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(watched) != 2 {
		t.Fatalf("got %d watched videos, want 2", len(watched))
	}
	if watched[0].WatchedAt.Before(watched[1].WatchedAt) {
		t.Error("history must be ordered most recent first")
	}
}

func TestUserRepository_GetHistory_DropsOrphanedPointers(t *testing.T) {
	repo, videos, _ := newUserRepo(t)
	ctx := context.Background()

	if _, err := videos.Create(ctx, &model.Video{ID: "v1", Title: "Kept"}); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	if err := repo.AddHistory(ctx, "u1", "v1"); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if err := repo.AddHistory(ctx, "u1", "removed-video"); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}

	watched, err := repo.GetHistory(ctx, "u1", 20)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(watched) != 1 || watched[0].ID != "v1" {
		t.Errorf("got %+v, want only v1", watched)
	}
}

func TestUserRepository_ToggleFavorite_SelfInverse(t *testing.T) {
	repo, videos, _ := newUserRepo(t)
	ctx := context.Background()

	if _, err := videos.Create(ctx, &model.Video{ID: "v1", Title: "Dune"}); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	on, err := repo.ToggleFavorite(ctx, "u1", "v1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !on {
		t.Error("first toggle should favorite")
	}

	favs, err := repo.GetFavorites(ctx, "u1")
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != "v1" {
		t.Errorf("favorites = %+v, want [v1]", favs)
	}

	off, err := repo.ToggleFavorite(ctx, "u1", "v1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if off {
		t.Error("second toggle should unfavorite")
	}

	favs, err = repo.GetFavorites(ctx, "u1")
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites = %+v, want empty", favs)
	}
}

func TestUserRepository_GetFavorites_DropsOrphanedPointers(t *testing.T) {
	repo, videos, _ := newUserRepo(t)
	ctx := context.Background()

	if _, err := videos.Create(ctx, &model.Video{ID: "v1", Title: "Kept"}); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	if _, err := repo.ToggleFavorite(ctx, "u1", "v1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if _, err := repo.ToggleFavorite(ctx, "u1", "removed-video"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}

	favs, err := repo.GetFavorites(ctx, "u1")
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != "v1" {
		t.Errorf("favorites = %+v, want only v1", favs)
	}
}
