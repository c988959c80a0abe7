package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// MockUserRepository is a mock implementation of IUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCourseRepository is a mock implementation of ICourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	args := m.Called(ctx, course)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) ListCourses(ctx context.Context, search string) ([]*models.Course, error) {
	args := m.Called(ctx, search)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepository) ListCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	args := m.Called(ctx, instructorID)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepository) ListEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	args := m.Called(ctx, userID)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepository) UpdateCourse(ctx context.Context, course *models.Course, replaceThumbnail bool) error {
	args := m.Called(ctx, course, replaceThumbnail)
	return args.Error(0)
}

func (m *MockCourseRepository) DeleteCourseOwnedBy(ctx context.Context, courseID, instructorID int64) error {
	args := m.Called(ctx, courseID, instructorID)
	return args.Error(0)
}

// MockLessonRepository is a mock implementation of ILessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	args := m.Called(ctx, lesson)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLessonRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockLessonRepository) ListLessonsByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	args := m.Called(ctx, courseID)
	lessons, _ := args.Get(0).([]*models.Lesson)
	return lessons, args.Error(1)
}

func (m *MockLessonRepository) GetLessonOwner(ctx context.Context, lessonID int64) (*models.LessonOwner, error) {
	args := m.Called(ctx, lessonID)
	owner, _ := args.Get(0).(*models.LessonOwner)
	return owner, args.Error(1)
}

func (m *MockLessonRepository) DeleteLesson(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEnrollmentRepository is a mock implementation of IEnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Enroll(ctx context.Context, userID, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

// MockProgressRepository is a mock implementation of IProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) MarkLessonComplete(ctx context.Context, userID, lessonID int64) (bool, error) {
	args := m.Called(ctx, userID, lessonID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error) {
	args := m.Called(ctx, userID, courseID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockProgressRepository) CourseProgress(ctx context.Context, userID, courseID int64) (models.Progress, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Get(0).(models.Progress), args.Error(1)
}

func (m *MockProgressRepository) StudentProgress(ctx context.Context, courseID int64) ([]*models.StudentProgress, error) {
	args := m.Called(ctx, courseID)
	rows, _ := args.Get(0).([]*models.StudentProgress)
	return rows, args.Error(1)
}

// MockQuizRepository is a mock implementation of IQuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) UpsertQuiz(ctx context.Context, quiz *models.Quiz) (int64, error) {
	args := m.Called(ctx, quiz)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) GetQuizByLessonID(ctx context.Context, lessonID int64) (*models.Quiz, error) {
	args := m.Called(ctx, lessonID)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

// MockFileStorage is a mock implementation of filestorage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	args := m.Called(fileHeader)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockFileStorage) GetFullPath(name string) string {
	return m.Called(name).String(0)
}

func (m *MockFileStorage) ListFiles() ([]filestorage.StoredFile, error) {
	args := m.Called()
	files, _ := args.Get(0).([]filestorage.StoredFile)
	return files, args.Error(1)
}

// memoryThrottle locks a key after limit failures
type memoryThrottle struct {
	limit    int
	failures map[string]int
}

func newMemoryThrottle(limit int) *memoryThrottle {
	return &memoryThrottle{limit: limit, failures: map[string]int{}}
}

func (t *memoryThrottle) Locked(_ context.Context, key string) (bool, time.Duration) {
	if t.failures[key] >= t.limit {
		return true, time.Minute
	}
	return false, 0
}

func (t *memoryThrottle) RecordFailure(_ context.Context, key string) { t.failures[key]++ }
func (t *memoryThrottle) Reset(_ context.Context, key string)         { delete(t.failures, key) }
