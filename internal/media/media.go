// Package media stores destination gallery images in an object bucket and
// hands back public URLs. An S3-compatible backend serves production
// (AWS S3 or MinIO); the memory backend serves tests and local development.
package media

import (
	"context"
	"io"
)

// Store is the object-storage surface consumed by the upload handlers.
type Store interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	PublicURL(key string) string
}
