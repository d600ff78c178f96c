// Package docstore provides a thin gateway over a managed document
// database, exposing the collection/document/query primitives the
// repositories are built on.
package docstore

import (
	"context"
	"errors"
)

// Op is a filter comparison operator. Filters combine with AND only.
type Op string

const (
	OpEqual Op = "=="
	OpGTE   Op = ">="
	OpLTE   Op = "<="
)

// Filter is a single field predicate.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query selects documents from a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Document is a raw document as returned by the store.
type Document struct {
	ID   string
	Data map[string]any
}

var (
	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
)

// Store is the document store gateway. Collection paths may address
// subcollections with slashes, e.g. "users/{id}/history".
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a single document by id.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// List returns documents matching the query.
	List(ctx context.Context, collection string, q Query) ([]Document, error)

	// Create adds a document with a store-assigned id and returns it.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)

	// Set writes a document under a caller-chosen id, overwriting any
	// existing document (upsert).
	Set(ctx context.Context, collection, id string, data map[string]any) error

	// Update applies a partial field update to an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Increment atomically adds delta to a numeric field. The increment
	// happens at the store, never as a local read-modify-write.
	Increment(ctx context.Context, collection, id, field string, delta int64) error

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, collection, id string) error
}
