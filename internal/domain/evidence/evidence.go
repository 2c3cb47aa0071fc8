// Package evidence keeps receipt and 경조사 evidence files next to the
// transactions that cite them.
package evidence

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
)

// MaxSize is the largest accepted evidence file in bytes
const MaxSize = 10 << 20

var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/heic":      ".heic",
	"application/pdf": ".pdf",
}

// Object is a stored evidence file
type Object struct {
	URI         string    `json:"uri"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Created     time.Time `json:"created"`
}

// Storage is where evidence files live
type Storage interface {
	// Put stores data under key and returns the object URI.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// List returns the objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// Service files evidence under the book it belongs to
type Service struct {
	storage Storage
	now     func() time.Time
}

// NewService creates a new evidence service
func NewService(storage Storage) *Service {
	return &Service{storage: storage, now: time.Now}
}

func bookPrefix(bookID string) string {
	return fmt.Sprintf("books/%s/evidence/", bookID)
}

// Upload stores one evidence file for bookID and returns its URI.
func (s *Service) Upload(ctx context.Context, bookID, contentType string, data []byte) (string, error) {
	if s == nil || s.storage == nil {
		return "", errors.NewExternalServiceError("evidence", fmt.Errorf("evidence storage is not configured"))
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := extensions[contentType]
	if !ok {
		return "", errors.NewValidationError("unsupported evidence type").WithDetail("contentType", contentType)
	}
	if len(data) == 0 {
		return "", errors.NewValidationError("evidence file is empty")
	}
	if len(data) > MaxSize {
		return "", errors.NewValidationError("evidence file is too large").WithDetail("maxBytes", MaxSize)
	}

	now := s.now()
	key := path.Join(bookPrefix(bookID), now.Format("2006"), ulid.Make().String()+ext)
	uri, err := s.storage.Put(ctx, key, contentType, data)
	if err != nil {
		return "", errors.NewExternalServiceError("evidence", err)
	}
	return uri, nil
}

// List returns every evidence file of bookID.
func (s *Service) List(ctx context.Context, bookID string) ([]Object, error) {
	if s == nil || s.storage == nil {
		return nil, errors.NewExternalServiceError("evidence", fmt.Errorf("evidence storage is not configured"))
	}
	objects, err := s.storage.List(ctx, bookPrefix(bookID))
	if err != nil {
		return nil, errors.NewExternalServiceError("evidence", err)
	}
	if objects == nil {
		objects = []Object{}
	}
	return objects, nil
}
