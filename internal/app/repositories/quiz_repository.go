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

// IQuizRepository defines the interface for quiz database operations
type IQuizRepository interface {
	UpsertQuiz(ctx context.Context, quiz *models.Quiz) (int64, error)
	GetQuizByLessonID(ctx context.Context, lessonID int64) (*models.Quiz, error)
}

// QuizRepository handles quiz database operations
type QuizRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpsertQuiz stores the lesson's quiz, replacing any previous one
func (r *QuizRepository) UpsertQuiz(ctx context.Context, quiz *models.Quiz) (int64, error) {
	sql, args, err := r.sb.Insert("quizzes").
		Columns("lesson_id", "question", "option_a", "option_b", "option_c", "option_d", "correct_option").
		Values(quiz.LessonID, quiz.Question, quiz.OptionA, quiz.OptionB, quiz.OptionC, quiz.OptionD, quiz.CorrectOption).
		Suffix(`ON CONFLICT ON CONSTRAINT quizzes_lesson_key DO UPDATE SET
			question = EXCLUDED.question,
			option_a = EXCLUDED.option_a,
			option_b = EXCLUDED.option_b,
			option_c = EXCLUDED.option_c,
			option_d = EXCLUDED.option_d,
			correct_option = EXCLUDED.correct_option,
			updated_at = NOW()
		RETURNING id`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert quiz SQL")
		return 0, fmt.Errorf("failed to build upsert quiz query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", quiz.LessonID).Msg("Error executing upsert quiz query")
		return 0, fmt.Errorf("error saving quiz: %w", err)
	}

	return quiz.ID, nil
}

// GetQuizByLessonID retrieves the quiz attached to a lesson
func (r *QuizRepository) GetQuizByLessonID(ctx context.Context, lessonID int64) (*models.Quiz, error) {
	sql, args, err := r.sb.Select("id", "lesson_id", "question", "option_a", "option_b", "option_c", "option_d",
		"correct_option", "created_at", "updated_at").
		From("quizzes").
		Where(squirrel.Eq{"lesson_id": lessonID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get quiz SQL")
		return nil, fmt.Errorf("failed to build get quiz query: %w", err)
	}

	quiz := &models.Quiz{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ID, &quiz.LessonID, &quiz.Question, &quiz.OptionA,
		&quiz.OptionB, &quiz.OptionC, &quiz.OptionD, &quiz.CorrectOption, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		logger.Error().Err(err).Int64("lessonID", lessonID).Msg("Error scanning quiz row")
		return nil, fmt.Errorf("error getting quiz: %w", err)
	}

	return quiz, nil
}
