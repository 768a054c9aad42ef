package services

import (
	"errors"
	"fmt"

	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
)

// UploadsPrefix is the public path under which stored images are served
const UploadsPrefix = "/uploads"

// nonNil turns a nil slice into an empty one so lists encode as []
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func imageError(err error) error {
	if errors.Is(err, filestorage.ErrUnsupportedFile) {
		return apperrors.NewValidationError("image", "only jpg, jpeg, png, gif and webp images are accepted")
	}
	return fmt.Errorf("error uploading file: %w", err)
}

func uploadResponse(kind domain.UploadKind, filename string) *dto.UploadResponse {
	return &dto.UploadResponse{
		Filename: filename,
		URL:      fmt.Sprintf("%s/%s/%s", UploadsPrefix, kind.Folder(), filename),
	}
}
