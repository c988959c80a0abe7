package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// certificateNamespace scopes certificate numbers to this application
var certificateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://learnhub.local/certificates"))

// CertificateNumber derives the verification number for a (user, course)
// pair. The same pair always yields the same number.
func CertificateNumber(userID, courseID int64) string {
	name := strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(courseID, 10)
	return uuid.NewSHA1(certificateNamespace, []byte(name)).String()
}

// IProgressService defines completion tracking and certification
type IProgressService interface {
	CompleteLesson(ctx context.Context, id auth.Identity, lessonID int64) (int64, error)
	Certificate(ctx context.Context, id auth.Identity, courseID int64) (*dto.Certificate, error)
}

// ProgressService handles lesson completion and certificates
type ProgressService struct {
	courseRepo   repositories.ICourseRepository
	lessonRepo   repositories.ILessonRepository
	progressRepo repositories.IProgressRepository
	logger       zerolog.Logger
	now          func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	progressRepo repositories.IProgressRepository,
	logger zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CompleteLesson marks a lesson finished for the calling student and
// returns the lesson's course id. Repeats are ignored.
func (s *ProgressService) CompleteLesson(ctx context.Context, id auth.Identity, lessonID int64) (int64, error) {
	if !auth.CanCompleteLesson(id) {
		return 0, apperrors.NewForbiddenError(msgStudentsOnly)
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return 0, errLessonMissing
		}
		return 0, err
	}

	created, err := s.progressRepo.MarkLessonComplete(ctx, id.UserID, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return 0, errLessonMissing
		}
		return 0, fmt.Errorf("failed to mark lesson complete: %w", err)
	}

	if created {
		s.logger.Info().Int64("userID", id.UserID).Int64("lessonID", lessonID).Msg("Lesson completed")
	}
	return lesson.CourseID, nil
}

// Certificate returns the certificate for a course whose every lesson the
// student has completed. Progress is recomputed on each call.
func (s *ProgressService) Certificate(ctx context.Context, id auth.Identity, courseID int64) (*dto.Certificate, error) {
	if !id.IsStudent() {
		return nil, apperrors.NewForbiddenError(msgStudentsOnly)
	}

	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course not found.")
		}
		return nil, err
	}

	progress, err := s.progressRepo.CourseProgress(ctx, id.UserID, courseID)
	if err != nil {
		return nil, err
	}

	if !auth.CanViewCertificate(id, progress) {
		return nil, apperrors.NewCustomError(apperrors.ErrCertificateNotEarned,
			fmt.Sprintf("Complete every lesson to earn your certificate (%d of %d done).", progress.Done, progress.Total))
	}

	return &dto.Certificate{
		Number:      CertificateNumber(id.UserID, courseID),
		StudentName: id.Name,
		Course:      course,
		Progress:    progress,
		IssuedAt:    s.now(),
	}, nil
}
