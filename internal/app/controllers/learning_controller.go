package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// LearningController handles enrollment, completion and certificates
type LearningController struct {
	enrollmentService services.IEnrollmentService
	progressService   services.IProgressService
	logger            zerolog.Logger
}

// NewLearningController creates a new LearningController
func NewLearningController(
	enrollmentService services.IEnrollmentService,
	progressService services.IProgressService,
	logger zerolog.Logger,
) *LearningController {
	return &LearningController{
		enrollmentService: enrollmentService,
		progressService:   progressService,
		logger:            logger,
	}
}

// Enroll registers the user in a course
func (c *LearningController) Enroll(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "course_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Course not found.", "/courses")
		return
	}
	coursePage := fmt.Sprintf("/course/%d", courseID)

	if err := c.enrollmentService.Enroll(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID); err != nil {
		target := coursePage
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			target = "/courses"
		}
		middleware.HandlePageError(ctx, err, target)
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "You are now enrolled in this course!", coursePage)
}

// CompleteLesson marks a lesson as done
func (c *LearningController) CompleteLesson(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "lesson_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Lesson not found.", "/dashboard")
		return
	}

	courseID, err := c.progressService.CompleteLesson(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Lesson marked as complete.", fmt.Sprintf("/course/%d", courseID))
}

// Certificate renders the completion certificate
func (c *LearningController) Certificate(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "course_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Course not found.", "/dashboard")
		return
	}

	cert, err := c.progressService.Certificate(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID)
	if err != nil {
		target := "/dashboard"
		if errors.Is(err, apperrors.ErrCertificateNotEarned) {
			target = fmt.Sprintf("/course/%d", courseID)
		}
		middleware.HandlePageError(ctx, err, target)
		return
	}

	render(ctx, "certificate.html", "Certificate", gin.H{"Certificate": cert})
}
