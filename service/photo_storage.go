package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DrivePhotoStorage persists customer photos to a Google Drive folder using
// a Service Account. Implements PhotoStorageInterface.
type DrivePhotoStorage struct {
	client   *drive.Service
	folderID string
}

// NewDrivePhotoStorage creates a new DrivePhotoStorage.
// credentialsPath is the Service Account JSON file; folderID is the Drive
// folder customer photos are uploaded into.
func NewDrivePhotoStorage(credentialsPath, folderID string) (*DrivePhotoStorage, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DrivePhotoStorage{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DrivePhotoStorage implements PhotoStorageInterface
var _ PhotoStorageInterface = (*DrivePhotoStorage)(nil)

// UploadPhoto uploads the raw photo bytes untouched and returns the Drive
// file ID as the image reference
func (s *DrivePhotoStorage) UploadPhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	file := &drive.File{Name: fileName}
	if s.folderID != "" {
		file.Parents = []string{s.folderID}
	}

	created, err := s.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to Drive: %w", err)
	}

	log.Printf("✅ UploadPhoto: uploaded %s (%d bytes) as drive file %s", fileName, len(data), created.Id)
	return created.Id, nil
}
