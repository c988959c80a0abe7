package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// QuizController handles quiz authoring and answering
type QuizController struct {
	quizService services.IQuizService
	logger      zerolog.Logger
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService services.IQuizService, logger zerolog.Logger) *QuizController {
	return &QuizController{
		quizService: quizService,
		logger:      logger,
	}
}

// ShowAddQuiz renders the quiz editor
func (c *QuizController) ShowAddQuiz(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "lesson_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Lesson not found.", "/dashboard")
		return
	}

	page, err := c.quizService.GetQuizEditor(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	render(ctx, "add_quiz.html", "Quiz", gin.H{"Page": page, "Letters": models.QuizLetters})
}

// AddQuiz saves the quiz, replacing any earlier one
func (c *QuizController) AddQuiz(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "lesson_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Lesson not found.", "/dashboard")
		return
	}
	back := fmt.Sprintf("/add_quiz/%d", lessonID)

	var form dto.QuizForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, back)
		return
	}

	page, err := c.quizService.SaveQuiz(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID, &form)
	if err != nil {
		target := "/dashboard"
		if errors.Is(err, apperrors.ErrValidationFailed) {
			target = back
		}
		middleware.HandlePageError(ctx, err, target)
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Quiz saved!", fmt.Sprintf("/course/%d", page.Lesson.CourseID))
}

// ShowTakeQuiz renders the quiz for a student
func (c *QuizController) ShowTakeQuiz(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "lesson_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Lesson not found.", "/dashboard")
		return
	}

	page, err := c.quizService.GetQuizForStudent(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	render(ctx, "take_quiz.html", "Quiz", gin.H{"Page": page})
}

// TakeQuiz grades a submitted answer and reports the result
func (c *QuizController) TakeQuiz(ctx *gin.Context) {
	lessonID, ok := helpers.ParseIDParam(ctx, "lesson_id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashWarning, "Lesson not found.", "/dashboard")
		return
	}
	back := fmt.Sprintf("/take_quiz/%d", lessonID)

	var form dto.QuizAnswerForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, back)
		return
	}

	result, err := c.quizService.SubmitAnswer(ctx.Request.Context(), middleware.CurrentIdentity(ctx), lessonID, form.Answer)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	coursePage := fmt.Sprintf("/course/%d", result.CourseID)
	if result.Correct {
		middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Correct! Well done.", coursePage)
		return
	}
	middleware.RedirectWithFlash(ctx, middleware.FlashDanger,
		fmt.Sprintf("Incorrect. The correct answer was %s.", result.CorrectOption), coursePage)
}
