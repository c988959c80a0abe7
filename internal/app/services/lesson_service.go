package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// ILessonService defines lesson authoring operations
type ILessonService interface {
	GetCourseForLessons(ctx context.Context, id auth.Identity, courseID int64) (*models.Course, error)
	AddLesson(ctx context.Context, id auth.Identity, courseID int64, form *dto.LessonForm) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id auth.Identity, lessonID int64) (int64, error)
}

// LessonService handles lessons inside instructor-owned courses
type LessonService struct {
	courseRepo repositories.ICourseRepository
	lessonRepo repositories.ILessonRepository
	logger     zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	logger zerolog.Logger,
) *LessonService {
	return &LessonService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		logger:     logger,
	}
}

// GetCourseForLessons returns the course when the caller may add lessons to it
func (s *LessonService) GetCourseForLessons(ctx context.Context, id auth.Identity, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewForbiddenError(msgCannotModify)
		}
		return nil, err
	}

	if !auth.CanEditCourse(id, course) {
		return nil, apperrors.NewForbiddenError(msgCannotModify)
	}
	return course, nil
}

func parseLessonOrder(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	order, err := strconv.Atoi(value)
	if err != nil {
		return nil, apperrors.NewValidationError("Lesson order must be a whole number.")
	}
	return &order, nil
}

// AddLesson appends a lesson to an owned course
func (s *LessonService) AddLesson(ctx context.Context, id auth.Identity, courseID int64, form *dto.LessonForm) (*models.Lesson, error) {
	if _, err := s.GetCourseForLessons(ctx, id, courseID); err != nil {
		return nil, err
	}

	order, err := parseLessonOrder(form.Order)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    strings.TrimSpace(form.Title),
		Content:  form.Content,
		VideoURL: strings.TrimSpace(form.VideoURL),
		Order:    order,
	}

	if _, err := s.lessonRepo.CreateLesson(ctx, lesson); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewForbiddenError(msgCannotModify)
		}
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info().Int64("lessonID", lesson.ID).Int64("courseID", courseID).Msg("Lesson added")
	return lesson, nil
}

// DeleteLesson removes a lesson from an owned course and returns the
// course id so the caller can go back to it.
func (s *LessonService) DeleteLesson(ctx context.Context, id auth.Identity, lessonID int64) (int64, error) {
	owner, err := s.lessonRepo.GetLessonOwner(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return 0, apperrors.NewForbiddenError(msgPermissionDenied)
		}
		return 0, err
	}

	if !auth.CanManageLesson(id, owner) {
		return 0, apperrors.NewForbiddenError(msgPermissionDenied)
	}

	if err := s.lessonRepo.DeleteLesson(ctx, lessonID); err != nil && !errors.Is(err, apperrors.ErrLessonNotFound) {
		return 0, fmt.Errorf("failed to delete lesson: %w", err)
	}

	s.logger.Info().Int64("lessonID", lessonID).Int64("courseID", owner.CourseID).Msg("Lesson deleted")
	return owner.CourseID, nil
}
