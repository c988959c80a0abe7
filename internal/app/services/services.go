package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// User-facing messages shared by several services
const (
	msgPermissionDenied  = "Permission denied."
	msgCannotModify      = "You do not have permission to modify this course."
	msgInstructorsOnly   = "Access denied. Instructors only."
	msgStudentsOnly      = "Only students can do that."
	msgUnsupportedUpload = "Please upload a PNG, JPEG, GIF or WebP image."
)

// storeImage saves an optional upload and returns its stored name, or nil
// when nothing was uploaded.
func storeImage(storage filestorage.FileStorage, header *multipart.FileHeader) (*string, error) {
	if header == nil {
		return nil, nil
	}

	name, err := storage.SaveImage(header)
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedType) || errors.Is(err, filestorage.ErrEmptyFilename) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidUpload, msgUnsupportedUpload)
		}
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if name == "" {
		return nil, nil
	}
	return &name, nil
}
