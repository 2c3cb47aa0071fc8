// Package gcs stores evidence files in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/evidence"
)

// Storage writes objects to one bucket. Credentials come from Application
// Default Credentials.
type Storage struct {
	client *storage.Client
	bucket string
}

var _ evidence.Storage = (*Storage)(nil)

// NewStorage creates a storage client for bucket.
func NewStorage(ctx context.Context, bucket string) (*Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Storage{client: client, bucket: bucket}, nil
}

// Close releases the client.
func (s *Storage) Close() error {
	return s.client.Close()
}

// URI returns the gs:// URI of key.
func URI(bucket, key string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, key)
}

// Put uploads data as key and returns its gs:// URI.
func (s *Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload of %s: %w", key, err)
	}
	return URI(s.bucket, key), nil
}

// List returns the objects under prefix.
func (s *Storage) List(ctx context.Context, prefix string) ([]evidence.Object, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var out []evidence.Object
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		out = append(out, evidence.Object{
			URI:         URI(s.bucket, attrs.Name),
			Name:        path.Base(attrs.Name),
			ContentType: attrs.ContentType,
			Size:        attrs.Size,
			Created:     attrs.Created,
		})
	}
	return out, nil
}
