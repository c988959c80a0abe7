package controllers

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form *dto.SignupForm) (*models.User, error) {
	args := m.Called(ctx, form)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, form *dto.LoginForm, clientKey string) (*dto.Session, error) {
	args := m.Called(ctx, form, clientKey)
	session, _ := args.Get(0).(*dto.Session)
	return session, args.Error(1)
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) CreateCourse(ctx context.Context, id auth.Identity, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error) {
	args := m.Called(ctx, id, form, thumbnail)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) GetCourseForEdit(ctx context.Context, id auth.Identity, courseID int64) (*models.Course, error) {
	args := m.Called(ctx, id, courseID)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, id auth.Identity, courseID int64, form *dto.CourseForm, thumbnail *multipart.FileHeader) (*models.Course, error) {
	args := m.Called(ctx, id, courseID, form, thumbnail)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) DeleteCourse(ctx context.Context, id auth.Identity, courseID int64) error {
	return m.Called(ctx, id, courseID).Error(0)
}

func (m *MockCourseService) ListCourses(ctx context.Context, search string) ([]*models.Course, error) {
	args := m.Called(ctx, search)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseService) GetCourseDetails(ctx context.Context, id auth.Identity, courseID int64) (*dto.CourseDetails, error) {
	args := m.Called(ctx, id, courseID)
	details, _ := args.Get(0).(*dto.CourseDetails)
	return details, args.Error(1)
}

func (m *MockCourseService) Dashboard(ctx context.Context, id auth.Identity) ([]*dto.DashboardCourse, error) {
	args := m.Called(ctx, id)
	cards, _ := args.Get(0).([]*dto.DashboardCourse)
	return cards, args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CourseProgressReport(ctx context.Context, id auth.Identity, courseID int64) (*dto.Report, error) {
	args := m.Called(ctx, id, courseID)
	report, _ := args.Get(0).(*dto.Report)
	return report, args.Error(1)
}

type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) Enroll(ctx context.Context, id auth.Identity, courseID int64) error {
	return m.Called(ctx, id, courseID).Error(0)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) CompleteLesson(ctx context.Context, id auth.Identity, lessonID int64) (int64, error) {
	args := m.Called(ctx, id, lessonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressService) Certificate(ctx context.Context, id auth.Identity, courseID int64) (*dto.Certificate, error) {
	args := m.Called(ctx, id, courseID)
	cert, _ := args.Get(0).(*dto.Certificate)
	return cert, args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GetQuizEditor(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error) {
	args := m.Called(ctx, id, lessonID)
	page, _ := args.Get(0).(*dto.QuizPage)
	return page, args.Error(1)
}

func (m *MockQuizService) SaveQuiz(ctx context.Context, id auth.Identity, lessonID int64, form *dto.QuizForm) (*dto.QuizPage, error) {
	args := m.Called(ctx, id, lessonID, form)
	page, _ := args.Get(0).(*dto.QuizPage)
	return page, args.Error(1)
}

func (m *MockQuizService) GetQuizForStudent(ctx context.Context, id auth.Identity, lessonID int64) (*dto.QuizPage, error) {
	args := m.Called(ctx, id, lessonID)
	page, _ := args.Get(0).(*dto.QuizPage)
	return page, args.Error(1)
}

func (m *MockQuizService) SubmitAnswer(ctx context.Context, id auth.Identity, lessonID int64, answer string) (*dto.TakeQuizResult, error) {
	args := m.Called(ctx, id, lessonID, answer)
	result, _ := args.Get(0).(*dto.TakeQuizResult)
	return result, args.Error(1)
}

type pingFunc func() error

func (f pingFunc) Ping(context.Context) error { return f() }
