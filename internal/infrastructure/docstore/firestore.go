package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ClientConfig holds configuration for the Firestore-backed store.
type ClientConfig struct {
	ProjectID string
	// CredentialsPath points at a service account key file. Empty falls
	// back to application default credentials.
	CredentialsPath string
}

// Client implements Store on top of Cloud Firestore.
type Client struct {
	fs *firestore.Client
}

// NewClient connects to Firestore. The returned client is safe for
// concurrent use and should be created once at startup.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{fs: fs}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := c.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("firestore get: %w", err)
	}

	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (c *Client) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	fq := c.fs.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list: %w", err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (c *Client) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := c.fs.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore create: %w", err)
	}
	return ref.ID, nil
}

func (c *Client) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if _, err := c.fs.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := c.fs.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("firestore update: %w", err)
	}
	return nil
}

func (c *Client) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	update := []firestore.Update{{Path: field, Value: firestore.Increment(delta)}}

	if _, err := c.fs.Collection(collection).Doc(id).Update(ctx, update); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("firestore increment: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if _, err := c.fs.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete: %w", err)
	}
	return nil
}
