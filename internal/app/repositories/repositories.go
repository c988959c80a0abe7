package repositories

import (
	"github.com/yigit/learnhub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	LessonRepository     *LessonRepository
	EnrollmentRepository *EnrollmentRepository
	ProgressRepository   *ProgressRepository
	QuizRepository       *QuizRepository
	UploadRepository     *UploadRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database),
		LessonRepository:     NewLessonRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database.Pool),
		ProgressRepository:   NewProgressRepository(database.Pool),
		QuizRepository:       NewQuizRepository(database.Pool),
		UploadRepository:     NewUploadRepository(database.Pool),
	}
}
