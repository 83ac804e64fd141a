package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifelike-app/backend/internal/common"
	"github.com/lifelike-app/backend/internal/server/blob"
)

// MediaService uploads profile images to the blob store and returns the
// resulting retrieval URL. Uploads are accepted as a standalone capability;
// they are not bound to an authenticated session.
type MediaService struct {
	store blob.Store
}

func NewMediaService(store blob.Store) *MediaService {
	return &MediaService{store: store}
}

// GetRandomStorageKey produces a date-partitioned unique object key.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("profile-images/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// UploadProfileImage stores the binary payload and returns its URL. An empty
// payload is rejected with common.ErrorValidation; a blob-store failure is
// reported as common.ErrorUpload.
func (s *MediaService) UploadProfileImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", common.ErrorValidation
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.store.Upload(ctx, GetRandomStorageKey(), contentType, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUpload, err)
	}

	return url, nil
}
