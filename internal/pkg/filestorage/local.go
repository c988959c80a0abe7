package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// allowedImageTypes are the sniffed MIME types accepted for thumbnails and avatars
var allowedImageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
}

// LocalStorage stores uploads as flat files in one directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveImage stores fileHeader under its sanitized name after confirming the
// content is an image. A file with the same name is overwritten.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	name := SecureFilename(fileHeader.Filename)
	if name == "" {
		return "", ErrEmptyFilename
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		logger.Warn().Str("filename", name).Str("mime", mtype.String()).Msg("Rejected non-image upload")
		return "", ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	dstPath := filepath.Join(ls.basePath, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", name).Str("mime", mtype.String()).Msg("File saved successfully")
	return name, nil
}

// DeleteFile removes a stored file. Deleting a missing file is a no-op.
func (ls *LocalStorage) DeleteFile(name string) error {
	physicalPath := ls.GetFullPath(name)
	if physicalPath == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the filesystem path for a stored name, or "" when the
// name does not refer to a file directly inside the upload directory.
func (ls *LocalStorage) GetFullPath(name string) string {
	filename := filepath.Base(name)
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}

// ListFiles returns the regular files in the upload directory
func (ls *LocalStorage) ListFiles() ([]StoredFile, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	files := make([]StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, StoredFile{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// BasePath returns the upload directory
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
