package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// LessonController handles adding and removing lessons
type LessonController struct {
	lessonService services.ILessonService
	logger        zerolog.Logger
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.ILessonService, logger zerolog.Logger) *LessonController {
	return &LessonController{
		lessonService: lessonService,
		logger:        logger,
	}
}

const msgCannotModify = "You do not have permission to modify this course."

// ShowAddLesson renders the lesson form for the course owner
func (c *LessonController) ShowAddLesson(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, msgCannotModify, "/dashboard")
		return
	}

	course, err := c.lessonService.GetCourseForLessons(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	render(ctx, "add_lesson.html", "Add lesson", gin.H{"Course": course})
}

// AddLesson stores a lesson
func (c *LessonController) AddLesson(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, msgCannotModify, "/dashboard")
		return
	}
	back := fmt.Sprintf("/course/%d/add_lesson", courseID)

	var form dto.LessonForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, back)
		return
	}

	if _, err := c.lessonService.AddLesson(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID, &form); err != nil {
		target := "/dashboard"
		if errors.Is(err, apperrors.ErrValidationFailed) {
			target = back
		}
		middleware.HandlePageError(ctx, err, target)
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Lesson added successfully!", "/dashboard")
}

// DeleteLesson removes a lesson and returns to its course
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, "Permission denied.", "/dashboard")
		return
	}

	courseID, err := c.lessonService.DeleteLesson(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashInfo, "Lesson deleted.", fmt.Sprintf("/course/%d", courseID))
}
