package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// IEnrollmentRepository defines the interface for enrollment database operations
type IEnrollmentRepository interface {
	Enroll(ctx context.Context, userID, courseID int64) (bool, error)
	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll inserts the enrollment unless it already exists and reports
// whether a row was created.
func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id").
		Values(userID, courseID).
		Suffix("ON CONFLICT ON CONSTRAINT enrollments_user_course_key DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building enroll SQL")
		return false, fmt.Errorf("failed to build enroll query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return false, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error executing enroll query")
		return false, fmt.Errorf("error enrolling user: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// IsEnrolled checks whether the user is enrolled in the course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("enrollments").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment check query: %w", err)
	}

	var enrolled bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrolled); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error checking enrollment")
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return enrolled, nil
}
