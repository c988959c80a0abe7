package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/learnhub/internal/app/models"
	appRepos "github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/auth"
)

const (
	demoInstructorEmail    = "instructor@learnhub.local"
	demoInstructorPassword = "Instructor123!"
)

// CreateDemoData adds a demo instructor with one course, two lessons and
// a quiz. It does nothing when the demo instructor already exists.
func CreateDemoData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	exists, err := repos.UserRepository.EmailExists(ctx, demoInstructorEmail)
	if err != nil {
		return fmt.Errorf("checking demo instructor: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Demo data already present")
		return nil
	}

	lgr.Info().Msg("Creating demo data...")

	hash, err := auth.HashPassword(demoInstructorPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	instructorID, err := repos.UserRepository.CreateUser(ctx, &appModels.User{
		Name:     "Demo Instructor",
		Email:    demoInstructorEmail,
		Password: hash,
		Role:     appModels.RoleInstructor,
	})
	if err != nil {
		return fmt.Errorf("creating demo instructor: %w", err)
	}

	courseID, err := repos.CourseRepository.CreateCourse(ctx, &appModels.Course{
		Title:        "Intro to Python",
		Description:  "Variables, control flow and functions for complete beginners.",
		InstructorID: instructorID,
	})
	if err != nil {
		return fmt.Errorf("creating demo course: %w", err)
	}

	var finalErr error
	lessons := []appModels.Lesson{
		{Title: "Hello, Python", Content: "Install Python and run your first print statement."},
		{Title: "Variables and types", Content: "Numbers, strings and lists, and how to name them."},
	}
	var firstLessonID int64
	for i := range lessons {
		order := i + 1
		lesson := lessons[i]
		lesson.CourseID = courseID
		lesson.Order = &order
		id, err := repos.LessonRepository.CreateLesson(ctx, &lesson)
		if err != nil {
			lgr.Error().Err(err).Str("lesson", lesson.Title).Msg("Error creating demo lesson")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if firstLessonID == 0 {
			firstLessonID = id
		}
	}

	if firstLessonID > 0 {
		_, err = repos.QuizRepository.UpsertQuiz(ctx, &appModels.Quiz{
			LessonID:      firstLessonID,
			Question:      "Which function writes text to the console?",
			OptionA:       "echo()",
			OptionB:       "print()",
			OptionC:       "write()",
			OptionD:       "say()",
			CorrectOption: "B",
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating demo quiz")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Str("email", demoInstructorEmail).Int64("courseID", courseID).Msg("Demo data created")
	return finalErr
}
