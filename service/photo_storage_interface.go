package service

import "context"

// PhotoStorageInterface defines the contract for persisting customer photos.
// The returned reference travels in the order intent so the print shop can
// retrieve the original file.
type PhotoStorageInterface interface {
	UploadPhoto(ctx context.Context, fileName string, data []byte) (string, error)
}
