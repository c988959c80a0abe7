package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// IQuizService defines quiz authoring and answering
type IQuizService interface {
	GetQuizEditor(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error)
	SaveQuiz(ctx context.Context, id auth.Identity, lessonID int64, form *dto.QuizForm) (*dto.QuizPage, error)
	GetQuizForStudent(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error)
	SubmitAnswer(ctx context.Context, id auth.Identity, lessonID int64, answer string) (*dto.TakeQuizResult, error)
}

// QuizService handles the single quiz attached to a lesson
type QuizService struct {
	lessonRepo repositories.ILessonRepository
	quizRepo   repositories.IQuizRepository
	logger     zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(
	lessonRepo repositories.ILessonRepository,
	quizRepo repositories.IQuizRepository,
	logger zerolog.Logger,
) *QuizService {
	return &QuizService{
		lessonRepo: lessonRepo,
		quizRepo:   quizRepo,
		logger:     logger,
	}
}

var errLessonMissing = apperrors.NewResourceNotFoundError("Lesson not found.")

// GetQuizEditor loads a lesson and its current quiz, if any, for the
// instructor who owns the lesson's course.
func (s *QuizService) GetQuizEditor(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error) {
	owner, err := s.lessonRepo.GetLessonOwner(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, errLessonMissing
		}
		return nil, err
	}
	if !auth.CanManageQuiz(id, owner) {
		return nil, apperrors.NewForbiddenError(msgCannotModify)
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, errLessonMissing
		}
		return nil, err
	}

	page := &dto.QuizPage{Lesson: lesson}
	quiz, err := s.quizRepo.GetQuizByLessonID(ctx, lessonID)
	switch {
	case err == nil:
		page.Quiz = quiz
	case !errors.Is(err, apperrors.ErrQuizNotFound):
		return nil, err
	}

	return page, nil
}

// SaveQuiz creates the lesson's quiz or replaces the existing one
func (s *QuizService) SaveQuiz(ctx context.Context, id auth.Identity, lessonID int64, form *dto.QuizForm) (*dto.QuizPage, error) {
	page, err := s.GetQuizEditor(ctx, id, lessonID)
	if err != nil {
		return nil, err
	}

	correct := models.NormalizeOption(form.CorrectOption)
	if !isQuizLetter(correct) {
		return nil, apperrors.NewValidationError("The correct answer must be one of A, B, C or D.")
	}

	quiz := &models.Quiz{
		LessonID:      page.Lesson.ID,
		Question:      strings.TrimSpace(form.Question),
		OptionA:       strings.TrimSpace(form.OptionA),
		OptionB:       strings.TrimSpace(form.OptionB),
		OptionC:       strings.TrimSpace(form.OptionC),
		OptionD:       strings.TrimSpace(form.OptionD),
		CorrectOption: correct,
	}

	if _, err := s.quizRepo.UpsertQuiz(ctx, quiz); err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, errLessonMissing
		}
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	s.logger.Info().Int64("lessonID", lessonID).Int64("quizID", quiz.ID).Msg("Quiz saved")
	page.Quiz = quiz
	return page, nil
}

func isQuizLetter(letter string) bool {
	for _, l := range models.QuizLetters {
		if l == letter {
			return true
		}
	}
	return false
}

// GetQuizForStudent loads a lesson's quiz for answering
func (s *QuizService) GetQuizForStudent(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error) {
	if !auth.CanTakeQuiz(id) {
		return nil, apperrors.NewForbiddenError(msgStudentsOnly)
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, errLessonMissing
		}
		return nil, err
	}

	quiz, err := s.quizRepo.GetQuizByLessonID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuizNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrQuizNotFound, "No quiz available for this lesson yet.")
		}
		return nil, err
	}

	return &dto.QuizPage{Lesson: lesson, Quiz: quiz}, nil
}

// SubmitAnswer grades one answer. Nothing is recorded.
func (s *QuizService) SubmitAnswer(ctx context.Context, id auth.Identity, lessonID int64, answer string) (*dto.TakeQuizResult, error) {
	page, err := s.GetQuizForStudent(ctx, id, lessonID)
	if err != nil {
		return nil, err
	}

	return &dto.TakeQuizResult{
		Correct:       page.Quiz.IsCorrect(answer),
		CorrectOption: page.Quiz.CorrectOption,
		CourseID:      page.Lesson.CourseID,
	}, nil
}
