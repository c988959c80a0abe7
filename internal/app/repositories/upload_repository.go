package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// UploadRepository answers which stored upload names are still referenced
type UploadRepository struct {
	db *pgxpool.Pool
}

// NewUploadRepository creates a new UploadRepository
func NewUploadRepository(db *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{db: db}
}

// ReferencedUploads returns every thumbnail and profile picture name in use
func (r *UploadRepository) ReferencedUploads(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `
		SELECT thumbnail FROM courses WHERE thumbnail IS NOT NULL AND thumbnail <> ''
		UNION
		SELECT profile_pic FROM users WHERE profile_pic IS NOT NULL AND profile_pic <> ''`)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying referenced uploads")
		return nil, fmt.Errorf("error querying referenced uploads: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning upload reference: %w", err)
		}
		refs[name] = struct{}{}
	}

	return refs, rows.Err()
}
