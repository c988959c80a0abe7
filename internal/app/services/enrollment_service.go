package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// IEnrollmentService defines enrollment operations
type IEnrollmentService interface {
	Enroll(ctx context.Context, id auth.Identity, courseID int64) error
}

// EnrollmentService handles course enrollment
type EnrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// Enroll registers the caller in a course. Enrolling twice leaves the
// single existing row in place and reports ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, id auth.Identity, courseID int64) error {
	if !auth.CanEnroll(id) {
		return apperrors.NewCustomError(apperrors.ErrUnauthenticated, "Please log in first.")
	}

	created, err := s.enrollmentRepo.Enroll(ctx, id.UserID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course not found.")
		}
		return fmt.Errorf("failed to enroll: %w", err)
	}

	if !created {
		return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "You are already enrolled in this course.")
	}

	s.logger.Info().Int64("userID", id.UserID).Int64("courseID", courseID).Msg("User enrolled")
	return nil
}
