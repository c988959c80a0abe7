package dto

import (
	"time"

	"github.com/yigit/learnhub/internal/app/models"
)

// CourseDetails is everything the course page renders
type CourseDetails struct {
	Course   *models.Course
	Lessons  []*models.Lesson
	CanEdit  bool
	Enrolled bool
	// Completed holds the lesson ids the viewing student has finished
	Completed map[int64]bool
	Progress  models.Progress
}

// DashboardCourse is one card on the dashboard
type DashboardCourse struct {
	Course   *models.Course
	Progress models.Progress
}

// Certificate is rendered once a student has completed every lesson
type Certificate struct {
	Number      string
	StudentName string
	Course      *models.Course
	Progress    models.Progress
	IssuedAt    time.Time
}

// QuizPage is what the add and take quiz pages render
type QuizPage struct {
	Lesson *models.Lesson
	Quiz   *models.Quiz
}

// Report is a generated spreadsheet ready for download
type Report struct {
	Filename string
	Content  []byte
}

// Session is a freshly issued session cookie value for a user
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// TakeQuizResult is the outcome of one quiz submission. It is never stored.
type TakeQuizResult struct {
	Correct       bool
	CorrectOption string
	CourseID      int64
}
