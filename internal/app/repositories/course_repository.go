package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/db"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// ICourseRepository defines the interface for course database operations
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, search string) ([]*models.Course, error)
	ListCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error)
	ListEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course, replaceThumbnail bool) error
	DeleteCourseOwnedBy(ctx context.Context, courseID, instructorID int64) error
}

// CourseRepository handles course database operations
type CourseRepository struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
	sb       squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		database: database,
		db:       database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EscapeLikePattern escapes LIKE wildcards so user input matches literally
func EscapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.title", "c.description", "c.instructor_id", "c.thumbnail", "c.created_at", "u.name",
	).
		From("courses c").
		Join("users u ON u.id = c.instructor_id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.Thumbnail, &course.CreatedAt, &course.InstructorName)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building course list SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing course list query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// CreateCourse creates a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "instructor_id", "thumbnail").
		Values(course.Title, course.Description, course.InstructorID, course.Thumbnail).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return course.ID, nil
}

// GetCourseByID retrieves a course with its instructor's name
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourses().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// ListCourses returns every course, or those whose title or description
// contains search case-insensitively.
func (r *CourseRepository) ListCourses(ctx context.Context, search string) ([]*models.Course, error) {
	query := r.selectCourses().OrderBy("c.created_at DESC", "c.id DESC")

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + EscapeLikePattern(search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.title": pattern},
			squirrel.ILike{"c.description": pattern},
		})
	}

	return r.queryCourses(ctx, query, "list courses")
}

// ListCoursesByInstructor returns the courses an instructor authored
func (r *CourseRepository) ListCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	query := r.selectCourses().
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	return r.queryCourses(ctx, query, "list instructor courses")
}

// ListEnrolledCourses returns the courses a user is enrolled in
func (r *CourseRepository) ListEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := r.selectCourses().
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("e.created_at DESC", "c.id DESC")

	return r.queryCourses(ctx, query, "list enrolled courses")
}

// UpdateCourse writes title and description, and the thumbnail only when
// replaceThumbnail is set.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course, replaceThumbnail bool) error {
	values := map[string]interface{}{
		"title":       course.Title,
		"description": course.Description,
	}
	if replaceThumbnail {
		values["thumbnail"] = course.Thumbnail
	}

	sql, args, err := r.sb.Update("courses").
		SetMap(values).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourseOwnedBy locks the course row, confirms instructorID owns it
// and deletes it in one transaction. Lessons, quizzes, enrollments and
// completions go with it through ON DELETE CASCADE.
func (r *CourseRepository) DeleteCourseOwnedBy(ctx context.Context, courseID, instructorID int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("instructor_id").
			From("courses").
			Where(squirrel.Eq{"id": courseID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock course query: %w", err)
		}

		var ownerID int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&ownerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error locking course row")
			return fmt.Errorf("error locking course: %w", err)
		}

		if ownerID != instructorID {
			return apperrors.ErrPermissionDenied
		}

		sql, args, err = r.sb.Delete("courses").Where(squirrel.Eq{"id": courseID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete course query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course")
			return fmt.Errorf("error deleting course: %w", err)
		}

		return nil
	})
}
