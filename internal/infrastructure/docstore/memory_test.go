package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "videos", "v1", map[string]any{"title": "Dune"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	doc, err := s.Get(ctx, "videos", "v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.ID != "v1" || doc.Data["title"] != "Dune" {
		t.Errorf("unexpected doc: %+v", doc)
	}

	if err := s.Delete(ctx, "videos", "v1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "videos", "v1"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_Create_AssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.Create(ctx, "videos", map[string]any{"title": "A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id2, err := s.Create(ctx, "videos", map[string]any{"title": "B"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if id1 == "" || id2 == "" || id1 == id2 {
		t.Errorf("expected distinct non-empty ids, got %q and %q", id1, id2)
	}
}

func TestMemoryStore_List_Filters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "videos", "v1", map[string]any{"title": "Dune", "category": "Sci-Fi", "trending": true})
	s.Set(ctx, "videos", "v2", map[string]any{"title": "Duel", "category": "Action", "trending": false})
	s.Set(ctx, "videos", "v3", map[string]any{"title": "Arrival", "category": "Sci-Fi", "trending": true})

	docs, err := s.List(ctx, "videos", Query{
		Filters: []Filter{{Field: "category", Op: OpEqual, Value: "Sci-Fi"}},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	// Range filters AND-combine.
	docs, err = s.List(ctx, "videos", Query{
		Filters: []Filter{
			{Field: "title", Op: OpGTE, Value: "Du"},
			{Field: "title", Op: OpLTE, Value: "Du\uf8ff"},
		},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("prefix range: got %d docs, want 2", len(docs))
	}
}

func TestMemoryStore_List_OrderAndLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	s.Set(ctx, "users/u1/history", "v1", map[string]any{"watchedAt": base.Add(-2 * time.Hour), "videoId": "v1"})
	s.Set(ctx, "users/u1/history", "v2", map[string]any{"watchedAt": base, "videoId": "v2"})
	s.Set(ctx, "users/u1/history", "v3", map[string]any{"watchedAt": base.Add(-time.Hour), "videoId": "v3"})

	docs, err := s.List(ctx, "users/u1/history", Query{OrderBy: "watchedAt", Desc: true, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].ID != "v2" || docs[1].ID != "v3" {
		t.Errorf("order = [%s %s], want [v2 v3]", docs[0].ID, docs[1].ID)
	}
}

func TestMemoryStore_Increment_Atomic(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "videos", "v1", map[string]any{"views": int64(0)})

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := s.Increment(ctx, "videos", "v1", "views", 1); err != nil {
				t.Errorf("Increment failed: %v", err)
			}
		}()
	}
	wg.Wait()

	doc, err := s.Get(ctx, "videos", "v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := asInt64(doc.Data["views"]); got != n {
		t.Errorf("views = %d, want %d", got, n)
	}
}

func TestMemoryStore_Increment_MissingDocument(t *testing.T) {
	s := NewMemoryStore()

	err := s.Increment(context.Background(), "videos", "missing", "views", 1)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestMemoryStore_Get_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "videos", "v1", map[string]any{"title": "Dune"})

	doc, _ := s.Get(ctx, "videos", "v1")
	doc.Data["title"] = "mutated"

	again, _ := s.Get(ctx, "videos", "v1")
	if again.Data["title"] != "Dune" {
		t.Error("Get must return a copy, not the stored map")
	}
}
