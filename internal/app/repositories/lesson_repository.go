package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// ILessonRepository defines the interface for lesson database operations
type ILessonRepository interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error)
	GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error)
	ListLessonsByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	GetLessonOwner(ctx context.Context, lessonID int64) (*models.LessonOwner, error)
	DeleteLesson(ctx context.Context, id int64) error
}

// LessonRepository handles lesson database operations
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateLesson appends a lesson to a course
func (r *LessonRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	sql, args, err := r.sb.Insert("lessons").
		Columns("course_id", "title", "content", "video_url", "lesson_order").
		Values(lesson.CourseID, lesson.Title, lesson.Content, lesson.VideoURL, lesson.Order).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create lesson SQL")
		return 0, fmt.Errorf("failed to build create lesson query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", lesson.CourseID).Msg("Error executing create lesson query")
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}

	return lesson.ID, nil
}

// GetLessonByID retrieves a lesson by ID
func (r *LessonRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "content", "video_url", "lesson_order", "created_at").
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lesson by ID SQL")
		return nil, fmt.Errorf("failed to build get lesson query: %w", err)
	}

	lesson := &models.Lesson{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CourseID, &lesson.Title,
		&lesson.Content, &lesson.VideoURL, &lesson.Order, &lesson.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", id).Msg("Error scanning lesson row")
		return nil, fmt.Errorf("error getting lesson by ID: %w", err)
	}

	return lesson, nil
}

// ListLessonsByCourse returns a course's lessons ordered by lesson_order
// (unordered lessons last) and then by creation.
func (r *LessonRepository) ListLessonsByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	sql, args, err := r.sb.Select(
		"l.id", "l.course_id", "l.title", "l.content", "l.video_url", "l.lesson_order", "l.created_at",
		"EXISTS (SELECT 1 FROM quizzes q WHERE q.lesson_id = l.id)",
	).
		From("lessons l").
		Where(squirrel.Eq{"l.course_id": courseID}).
		OrderBy("l.lesson_order ASC NULLS LAST", "l.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list lessons SQL")
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list lessons query")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		lesson := &models.Lesson{}
		if err := rows.Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content,
			&lesson.VideoURL, &lesson.Order, &lesson.CreatedAt, &lesson.HasQuiz); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}

	return lessons, nil
}

// GetLessonOwner resolves the course and instructor a lesson belongs to
func (r *LessonRepository) GetLessonOwner(ctx context.Context, lessonID int64) (*models.LessonOwner, error) {
	sql, args, err := r.sb.Select("l.id", "l.course_id", "c.instructor_id").
		From("lessons l").
		Join("courses c ON c.id = l.course_id").
		Where(squirrel.Eq{"l.id": lessonID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lesson owner SQL")
		return nil, fmt.Errorf("failed to build get lesson owner query: %w", err)
	}

	owner := &models.LessonOwner{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&owner.LessonID, &owner.CourseID, &owner.InstructorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", lessonID).Msg("Error scanning lesson owner")
		return nil, fmt.Errorf("error getting lesson owner: %w", err)
	}

	return owner, nil
}

// DeleteLesson removes a lesson; its quiz and completions cascade
func (r *LessonRepository) DeleteLesson(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("lessons").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete lesson SQL")
		return fmt.Errorf("failed to build delete lesson query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("lessonID", id).Msg("Error executing delete lesson query")
		return fmt.Errorf("error deleting lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}
