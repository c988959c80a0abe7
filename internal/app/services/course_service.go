package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// ICourseService defines course operations
type ICourseService interface {
	CreateCourse(ctx context.Context, id auth.Identity, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error)
	GetCourseForEdit(ctx context.Context, id auth.Identity, courseID int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id auth.Identity, courseID int64, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error)
	DeleteCourse(ctx context.Context, id auth.Identity, courseID int64) error
	ListCourses(ctx context.Context, search string) ([]*models.Course, error)
	GetCourseDetails(ctx context.Context, id auth.Identity, courseID int64) (*dto.CourseDetails, error)
	Dashboard(ctx context.Context, id auth.Identity) ([]*dto.DashboardCourse, error)
}

// CourseService handles course authoring and browsing
type CourseService struct {
	courseRepo     repositories.ICourseRepository
	lessonRepo     repositories.ILessonRepository
	enrollmentRepo repositories.IEnrollmentRepository
	progressRepo   repositories.IProgressRepository
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	progressRepo repositories.IProgressRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		storage:        storage,
		logger:         logger,
	}
}

// CreateCourse stores a new course owned by the calling instructor
func (s *CourseService) CreateCourse(ctx context.Context, id auth.Identity, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error) {
	if !auth.CanCreateCourse(id) {
		return nil, apperrors.NewForbiddenError(msgInstructorsOnly)
	}

	thumb, err := storeImage(s.storage, thumbnail)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        strings.TrimSpace(form.Title),
		Description:  strings.TrimSpace(form.Description),
		InstructorID: id.UserID,
		Thumbnail:    thumb,
	}

	if _, err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("instructorID", id.UserID).Msg("Course created")
	return course, nil
}

// ownedCourse loads a course and confirms the caller owns it. A missing
// course and a foreign course produce the same denial.
func (s *CourseService) ownedCourse(ctx context.Context, id auth.Identity, courseID int64, message string) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewForbiddenError(message)
		}
		return nil, err
	}

	if !auth.CanEditCourse(id, course) {
		s.logger.Warn().Int64("courseID", courseID).Int64("userID", id.UserID).Msg("Course ownership check failed")
		return nil, apperrors.NewForbiddenError(message)
	}
	return course, nil
}

// GetCourseForEdit returns a course for its owner's edit form
func (s *CourseService) GetCourseForEdit(ctx context.Context, id auth.Identity, courseID int64) (*models.Course, error) {
	return s.ownedCourse(ctx, id, courseID, msgPermissionDenied)
}

// UpdateCourse changes title and description. A new thumbnail replaces the
// stored name; without one the current thumbnail is kept.
func (s *CourseService) UpdateCourse(ctx context.Context, id auth.Identity, courseID int64, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error) {
	course, err := s.ownedCourse(ctx, id, courseID, msgPermissionDenied)
	if err != nil {
		return nil, err
	}

	thumb, err := storeImage(s.storage, thumbnail)
	if err != nil {
		return nil, err
	}

	course.Title = strings.TrimSpace(form.Title)
	course.Description = strings.TrimSpace(form.Description)
	if thumb != nil {
		course.Thumbnail = thumb
	}

	if err := s.courseRepo.UpdateCourse(ctx, course, thumb != nil); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return course, nil
}

// DeleteCourse removes an owned course with everything that hangs off it
func (s *CourseService) DeleteCourse(ctx context.Context, id auth.Identity, courseID int64) error {
	if !id.IsInstructor() {
		return apperrors.NewForbiddenError(msgPermissionDenied)
	}

	err := s.courseRepo.DeleteCourseOwnedBy(ctx, courseID, id.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrPermissionDenied) {
			return apperrors.NewForbiddenError(msgPermissionDenied)
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info().Int64("courseID", courseID).Int64("instructorID", id.UserID).Msg("Course deleted")
	return nil
}

// ListCourses returns the catalogue, filtered by search when given
func (s *CourseService) ListCourses(ctx context.Context, search string) ([]*models.Course, error) {
	return s.courseRepo.ListCourses(ctx, search)
}

// GetCourseDetails assembles the course page. Students additionally get
// their enrollment, completed lessons and progress.
func (s *CourseService) GetCourseDetails(ctx context.Context, id auth.Identity, courseID int64) (*dto.CourseDetails, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.ListLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	details := &dto.CourseDetails{
		Course:    course,
		Lessons:   lessons,
		CanEdit:   auth.CanEditCourse(id, course),
		Completed: map[int64]bool{},
	}

	if !id.IsStudent() {
		return details, nil
	}

	if details.Enrolled, err = s.enrollmentRepo.IsEnrolled(ctx, id.UserID, courseID); err != nil {
		return nil, err
	}

	done, err := s.progressRepo.CompletedLessonIDs(ctx, id.UserID, courseID)
	if err != nil {
		return nil, err
	}
	for _, lessonID := range done {
		details.Completed[lessonID] = true
	}

	if details.Progress, err = s.progressRepo.CourseProgress(ctx, id.UserID, courseID); err != nil {
		return nil, err
	}

	return details, nil
}

// Dashboard lists authored courses for instructors and enrolled courses
// with progress for students.
func (s *CourseService) Dashboard(ctx context.Context, id auth.Identity) ([]*dto.DashboardCourse, error) {
	var (
		courses []*models.Course
		err     error
	)

	switch {
	case id.IsInstructor():
		courses, err = s.courseRepo.ListCoursesByInstructor(ctx, id.UserID)
	case id.IsStudent():
		courses, err = s.courseRepo.ListEnrolledCourses(ctx, id.UserID)
	default:
		return []*dto.DashboardCourse{}, nil
	}
	if err != nil {
		return nil, err
	}

	cards := make([]*dto.DashboardCourse, 0, len(courses))
	for _, course := range courses {
		card := &dto.DashboardCourse{Course: course}
		if id.IsStudent() {
			if card.Progress, err = s.progressRepo.CourseProgress(ctx, id.UserID, course.ID); err != nil {
				return nil, err
			}
		}
		cards = append(cards, card)
	}

	return cards, nil
}
