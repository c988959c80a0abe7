package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// IProgressRepository defines the interface for lesson completion queries
type IProgressRepository interface {
	MarkLessonComplete(ctx context.Context, userID, lessonID int64) (bool, error)
	CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error)
	CourseProgress(ctx context.Context, userID, courseID int64) (models.Progress, error)
	StudentProgress(ctx context.Context, courseID int64) ([]*models.StudentProgress, error)
}

// ProgressRepository handles completed lesson rows and the aggregates over them
type ProgressRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// MarkLessonComplete records a completion; repeating it is a no-op
func (r *ProgressRepository) MarkLessonComplete(ctx context.Context, userID, lessonID int64) (bool, error) {
	sql, args, err := r.sb.Insert("completed_lessons").
		Columns("user_id", "lesson_id").
		Values(userID, lessonID).
		Suffix("ON CONFLICT ON CONSTRAINT completed_lessons_user_lesson_key DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building complete lesson SQL")
		return false, fmt.Errorf("failed to build complete lesson query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return false, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("lessonID", lessonID).Msg("Error executing complete lesson query")
		return false, fmt.Errorf("error completing lesson: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// CompletedLessonIDs returns the distinct lessons of a course the user finished
func (r *ProgressRepository) CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("DISTINCT cl.lesson_id").
		From("completed_lessons cl").
		Join("lessons l ON l.id = cl.lesson_id").
		Where(squirrel.Eq{"cl.user_id": userID, "l.course_id": courseID}).
		OrderBy("cl.lesson_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completed lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error querying completed lessons")
		return nil, fmt.Errorf("error querying completed lessons: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning completed lesson: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

const courseProgressSQL = `
	SELECT
		(SELECT COUNT(*) FROM lessons WHERE course_id = $1),
		(SELECT COUNT(DISTINCT cl.lesson_id)
		   FROM completed_lessons cl
		   JOIN lessons l ON l.id = cl.lesson_id
		  WHERE l.course_id = $1 AND cl.user_id = $2)`

// CourseProgress counts lessons and the user's completions in one query
func (r *ProgressRepository) CourseProgress(ctx context.Context, userID, courseID int64) (models.Progress, error) {
	progress := models.Progress{UserID: userID, CourseID: courseID}
	if err := r.db.QueryRow(ctx, courseProgressSQL, courseID, userID).Scan(&progress.Total, &progress.Done); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error computing course progress")
		return progress, fmt.Errorf("error computing course progress: %w", err)
	}
	return progress, nil
}

const studentProgressSQL = `
	SELECT u.id, u.name, u.email, e.created_at,
		(SELECT COUNT(DISTINCT cl.lesson_id)
		   FROM completed_lessons cl
		   JOIN lessons l ON l.id = cl.lesson_id
		  WHERE l.course_id = e.course_id AND cl.user_id = u.id)
	FROM enrollments e
	JOIN users u ON u.id = e.user_id
	WHERE e.course_id = $1
	ORDER BY u.name, u.id`

// StudentProgress lists every enrolled student with their completion count
func (r *ProgressRepository) StudentProgress(ctx context.Context, courseID int64) ([]*models.StudentProgress, error) {
	rows, err := r.db.Query(ctx, studentProgressSQL, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying student progress")
		return nil, fmt.Errorf("error querying student progress: %w", err)
	}
	defer rows.Close()

	result := []*models.StudentProgress{}
	for rows.Next() {
		sp := &models.StudentProgress{}
		if err := rows.Scan(&sp.UserID, &sp.Name, &sp.Email, &sp.EnrolledAt, &sp.Done); err != nil {
			return nil, fmt.Errorf("error scanning student progress: %w", err)
		}
		result = append(result, sp)
	}

	return result, rows.Err()
}
