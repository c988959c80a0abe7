package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// UploadReferences reports which upload names rows still point at
type UploadReferences interface {
	ReferencedUploads(ctx context.Context) (map[string]struct{}, error)
}

// UploadSweeper deletes uploads nothing references once they are older than
// the grace period. Thumbnail replacement leaves the old file behind and
// this is what eventually removes it.
type UploadSweeper struct {
	storage filestorage.FileStorage
	refs    UploadReferences
	grace   time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewUploadSweeper creates an UploadSweeper
func NewUploadSweeper(storage filestorage.FileStorage, refs UploadReferences, grace time.Duration, logger zerolog.Logger) *UploadSweeper {
	return &UploadSweeper{
		storage: storage,
		refs:    refs,
		grace:   grace,
		logger:  logger,
		now:     time.Now,
	}
}

// Name implements Job
func (s *UploadSweeper) Name() string { return "upload_sweeper" }

// Run implements Job
func (s *UploadSweeper) Run(ctx context.Context) error {
	files, err := s.storage.ListFiles()
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}

	refs, err := s.refs.ReferencedUploads(ctx)
	if err != nil {
		return fmt.Errorf("load upload references: %w", err)
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, f := range files {
		if strings.HasPrefix(f.Name, ".") {
			continue
		}
		if _, used := refs[f.Name]; used {
			continue
		}
		// a fresh upload may belong to a request that has not committed yet
		if f.ModTime.After(cutoff) {
			continue
		}

		if err := s.storage.DeleteFile(f.Name); err != nil {
			s.logger.Warn().Err(err).Str("file", f.Name).Msg("Failed to delete orphaned upload")
			continue
		}
		removed++
	}

	s.logger.Info().Int("scanned", len(files)).Int("removed", removed).Msg("Upload sweep finished")
	return nil
}
