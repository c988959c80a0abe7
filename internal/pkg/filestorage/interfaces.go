package filestorage

import (
	"errors"
	"mime/multipart"
	"time"
)

// Upload errors
var (
	ErrEmptyFilename   = errors.New("filename is empty after sanitizing")
	ErrUnsupportedType = errors.New("file is not a supported image")
	ErrInvalidPath     = errors.New("invalid file path")
)

// StoredFile describes one file in the upload directory
type StoredFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileStorage defines the interface for upload storage operations
type FileStorage interface {
	// SaveImage validates the upload as an image and stores it under its
	// sanitized original name, replacing any file with the same name.
	SaveImage(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a stored file; missing files are not an error
	DeleteFile(name string) error

	// GetFullPath returns the filesystem path for a stored name
	GetFullPath(name string) string

	// ListFiles returns every regular file in the upload directory
	ListFiles() ([]StoredFile, error)
}
