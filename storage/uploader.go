package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const playerPhotoPrefix = "players"

type UploadResult struct {
	Key      string
	Location string // публичный URL объекта
	ETag     string
}

// FileUploader stores player photos. Keys are bucket-relative paths.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// PlayerPhotoKey returns a fresh object key, so a new upload never overwrites a cached photo.
func PlayerPhotoKey(playerID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", playerPhotoPrefix, playerID, uuid.NewString(), ext)
}
