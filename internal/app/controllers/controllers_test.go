package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appAuth "github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/auth"
	"github.com/yigit/learnhub/internal/web"
)

const sessionCookie = "session"

var alice = appAuth.Identity{UserID: 3, Name: "Alice", Role: models.RoleStudent}

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterFormFieldNames()
}

type testApp struct {
	router   *gin.Engine
	sessions *auth.SessionManager
	authMw   *middleware.AuthMiddleware
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	sessions := auth.NewSessionManager(auth.SessionConfig{SecretKey: "secret", TTL: time.Hour, Issuer: "learnhub"})
	authMw := middleware.NewAuthMiddleware(sessions, sessionCookie, false, zerolog.Nop())

	tmpl, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	require.NoError(t, router.SetTrustedProxies(nil))
	router.SetHTMLTemplate(tmpl)
	router.Use(authMw.LoadIdentity())
	return &testApp{router: router, sessions: sessions, authMw: authMw}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, id appAuth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if id.IsAuthenticated() {
		token, _, err := a.sessions.Issue(id.UserID, id.Name, id.Role.String())
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashes decodes the flash cookie a redirect queued
func flashes(t *testing.T, rec *httptest.ResponseRecorder) []middleware.Flash {
	t.Helper()
	cookie := cookieNamed(rec, "learnhub_flash")
	require.NotNil(t, cookie, "no flash cookie set")
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	require.NoError(t, err)
	var out []middleware.Flash
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func assertRedirectFlash(t *testing.T, rec *httptest.ResponseRecorder, location, category, message string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, location, rec.Header().Get("Location"))
	got := flashes(t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, middleware.Flash{Category: category, Message: message}, got[0])
}

func TestAuthController_Login(t *testing.T) {
	app := newTestApp(t)
	authService := new(MockAuthService)
	ctrl := NewAuthController(authService, app.authMw, zerolog.Nop())
	app.router.POST("/login", ctrl.Login)

	user := &models.User{ID: 3, Name: "Alice", Role: models.RoleStudent}
	authService.On("Login", mock.Anything, &dto.LoginForm{Email: "alice@example.com", Password: "pw"}, mock.Anything).
		Return(&dto.Session{User: user, Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	authService.On("Login", mock.Anything, &dto.LoginForm{Email: "alice@example.com", Password: "wrong"}, mock.Anything).
		Return(nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")).Once()

	rec := app.do(t, http.MethodPost, "/login", url.Values{"email": {"alice@example.com"}, "password": {"pw"}}, appAuth.Identity{})
	assertRedirectFlash(t, rec, "/dashboard", middleware.FlashSuccess, "Login successful!")
	session := cookieNamed(rec, sessionCookie)
	require.NotNil(t, session)
	assert.Equal(t, "signed-token", session.Value)
	assert.True(t, session.HttpOnly)

	rec = app.do(t, http.MethodPost, "/login", url.Values{"email": {"alice@example.com"}, "password": {"wrong"}}, appAuth.Identity{})
	assertRedirectFlash(t, rec, "/login", middleware.FlashDanger, "Invalid email or password")
	assert.Nil(t, cookieNamed(rec, sessionCookie))

	authService.AssertExpectations(t)
}

func TestAuthController_LoginThrottleKeyIgnoresForwardedFor(t *testing.T) {
	app := newTestApp(t)
	authService := new(MockAuthService)
	ctrl := NewAuthController(authService, app.authMw, zerolog.Nop())
	app.router.POST("/login", ctrl.Login)

	form := url.Values{"email": {"alice@example.com"}, "password": {"wrong"}}
	authService.On("Login", mock.Anything, &dto.LoginForm{Email: "alice@example.com", Password: "wrong"}, "192.0.2.1").
		Return(nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")).Times(3)

	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", spoofed)
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, req)
		assertRedirectFlash(t, rec, "/login", middleware.FlashDanger, "Invalid email or password")
	}

	authService.AssertExpectations(t)
}

func TestAuthController_SignupValidation(t *testing.T) {
	app := newTestApp(t)
	authService := new(MockAuthService)
	ctrl := NewAuthController(authService, app.authMw, zerolog.Nop())
	app.router.POST("/signup", ctrl.Signup)

	rec := app.do(t, http.MethodPost, "/signup", url.Values{"name": {"Alice"}}, appAuth.Identity{})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get("Location"))
	assert.Equal(t, middleware.FlashDanger, flashes(t, rec)[0].Category)
	authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthController_SignupRejectsOverlongPassword(t *testing.T) {
	app := newTestApp(t)
	authService := new(MockAuthService)
	ctrl := NewAuthController(authService, app.authMw, zerolog.Nop())
	app.router.POST("/signup", ctrl.Signup)

	long := strings.Repeat("p", 80)
	form := url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {long},
		"confirm_password": {long}, "role": {"student"},
	}

	rec := app.do(t, http.MethodPost, "/signup", form, appAuth.Identity{})
	assertRedirectFlash(t, rec, "/signup", middleware.FlashDanger, "Password must be at most 72 characters.")
	authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthController_Signup(t *testing.T) {
	app := newTestApp(t)
	authService := new(MockAuthService)
	ctrl := NewAuthController(authService, app.authMw, zerolog.Nop())
	app.router.POST("/signup", ctrl.Signup)

	form := url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"pw"},
		"confirm_password": {"pw"}, "role": {"student"},
	}
	authService.On("Register", mock.Anything, mock.AnythingOfType("*dto.SignupForm")).
		Return(&models.User{ID: 3}, nil).Once()

	rec := app.do(t, http.MethodPost, "/signup", form, appAuth.Identity{})
	assertRedirectFlash(t, rec, "/login", middleware.FlashSuccess, "Account created! Please sign in.")
	authService.AssertExpectations(t)
}

func TestAuthController_Logout(t *testing.T) {
	app := newTestApp(t)
	ctrl := NewAuthController(new(MockAuthService), app.authMw, zerolog.Nop())
	app.router.GET("/logout", ctrl.Logout)

	rec := app.do(t, http.MethodGet, "/logout", nil, alice)
	assertRedirectFlash(t, rec, "/login", middleware.FlashInfo, "You have been logged out.")
	cleared := cookieNamed(rec, sessionCookie)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestCourseController_CourseDetails(t *testing.T) {
	app := newTestApp(t)
	courseService := new(MockCourseService)
	ctrl := NewCourseController(courseService, new(MockReportService), zerolog.Nop())
	app.router.GET("/course/:id", ctrl.CourseDetails)

	one := 1
	details := &dto.CourseDetails{
		Course:    &models.Course{ID: 5, Title: "Intro to Python", InstructorName: "Bob"},
		Lessons:   []*models.Lesson{{ID: 11, CourseID: 5, Title: "Hello, Python", Order: &one, HasQuiz: true}},
		Enrolled:  true,
		Completed: map[int64]bool{11: true},
		Progress:  models.Progress{Total: 1, Done: 1},
	}
	courseService.On("GetCourseDetails", mock.Anything, alice, int64(5)).Return(details, nil).Once()
	courseService.On("GetCourseDetails", mock.Anything, appAuth.Identity{}, int64(6)).Return(nil, apperrors.ErrCourseNotFound).Once()

	rec := app.do(t, http.MethodGet, "/course/5", nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Intro to Python")
	assert.Contains(t, body, "1 of 1 lessons completed (100%)")
	assert.Contains(t, body, `/take_quiz/11`)

	rec = app.do(t, http.MethodGet, "/course/6", nil, appAuth.Identity{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Course not found", rec.Body.String())

	rec = app.do(t, http.MethodGet, "/course/abc", nil, appAuth.Identity{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	courseService.AssertExpectations(t)
}

func TestCourseController_ListCourses(t *testing.T) {
	app := newTestApp(t)
	courseService := new(MockCourseService)
	ctrl := NewCourseController(courseService, new(MockReportService), zerolog.Nop())
	app.router.GET("/courses", ctrl.ListCourses)

	courseService.On("ListCourses", mock.Anything, "python").
		Return([]*models.Course{{ID: 5, Title: "Intro to Python", InstructorName: "Bob"}}, nil).Once()

	rec := app.do(t, http.MethodGet, "/courses?search=python", nil, appAuth.Identity{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Intro to Python")
	courseService.AssertExpectations(t)
}

func TestCourseController_DeleteCourseDenied(t *testing.T) {
	app := newTestApp(t)
	courseService := new(MockCourseService)
	ctrl := NewCourseController(courseService, new(MockReportService), zerolog.Nop())
	app.router.POST("/course/:id/delete", ctrl.DeleteCourse)

	courseService.On("DeleteCourse", mock.Anything, alice, int64(5)).
		Return(apperrors.NewForbiddenError("Permission denied.")).Once()

	rec := app.do(t, http.MethodPost, "/course/5/delete", url.Values{}, alice)
	assertRedirectFlash(t, rec, "/dashboard", middleware.FlashDanger, "Permission denied.")
}

func TestCourseController_Report(t *testing.T) {
	app := newTestApp(t)
	reportService := new(MockReportService)
	ctrl := NewCourseController(new(MockCourseService), reportService, zerolog.Nop())
	app.router.GET("/course/:id/report", ctrl.Report)

	bob := appAuth.Identity{UserID: 1, Name: "Bob", Role: models.RoleInstructor}
	reportService.On("CourseProgressReport", mock.Anything, bob, int64(5)).
		Return(&dto.Report{Filename: "Intro_to_Python_progress.xlsx", Content: []byte("xlsx")}, nil).Once()

	rec := app.do(t, http.MethodGet, "/course/5/report", nil, bob)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Intro_to_Python_progress.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())
}

func TestLearningController_Enroll(t *testing.T) {
	app := newTestApp(t)
	enrollments := new(MockEnrollmentService)
	ctrl := NewLearningController(enrollments, new(MockProgressService), zerolog.Nop())
	app.router.POST("/enroll/:course_id", ctrl.Enroll)

	enrollments.On("Enroll", mock.Anything, alice, int64(5)).Return(nil).Once()
	enrollments.On("Enroll", mock.Anything, alice, int64(5)).
		Return(apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "You are already enrolled in this course.")).Once()
	enrollments.On("Enroll", mock.Anything, alice, int64(9)).
		Return(apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course not found.")).Once()

	rec := app.do(t, http.MethodPost, "/enroll/5", url.Values{}, alice)
	assertRedirectFlash(t, rec, "/course/5", middleware.FlashSuccess, "You are now enrolled in this course!")

	rec = app.do(t, http.MethodPost, "/enroll/5", url.Values{}, alice)
	assertRedirectFlash(t, rec, "/course/5", middleware.FlashWarning, "You are already enrolled in this course.")

	rec = app.do(t, http.MethodPost, "/enroll/9", url.Values{}, alice)
	assertRedirectFlash(t, rec, "/courses", middleware.FlashWarning, "Course not found.")

	enrollments.AssertExpectations(t)
}

func TestLearningController_Certificate(t *testing.T) {
	app := newTestApp(t)
	progress := new(MockProgressService)
	ctrl := NewLearningController(new(MockEnrollmentService), progress, zerolog.Nop())
	app.router.GET("/certificate/:course_id", ctrl.Certificate)

	msg := "Complete every lesson to earn your certificate (1 of 2 done)."
	progress.On("Certificate", mock.Anything, alice, int64(3)).
		Return(nil, apperrors.NewCustomError(apperrors.ErrCertificateNotEarned, msg)).Once()
	progress.On("Certificate", mock.Anything, alice, int64(4)).Return(&dto.Certificate{
		Number:      "0b9c4f8e-1d2a-5c3b-9e7f-123456789abc",
		StudentName: "Alice",
		Course:      &models.Course{ID: 4, Title: "Intro to Python", InstructorName: "Bob"},
		Progress:    models.Progress{Total: 2, Done: 2},
		IssuedAt:    time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	rec := app.do(t, http.MethodGet, "/certificate/3", nil, alice)
	assertRedirectFlash(t, rec, "/course/3", middleware.FlashWarning, msg)

	rec = app.do(t, http.MethodGet, "/certificate/4", nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Intro to Python")
	assert.Contains(t, rec.Body.String(), "0b9c4f8e-1d2a-5c3b-9e7f-123456789abc")

	progress.AssertExpectations(t)
}

func TestLearningController_CompleteLesson(t *testing.T) {
	app := newTestApp(t)
	progress := new(MockProgressService)
	ctrl := NewLearningController(new(MockEnrollmentService), progress, zerolog.Nop())
	app.router.POST("/complete_lesson/:lesson_id", ctrl.CompleteLesson)

	progress.On("CompleteLesson", mock.Anything, alice, int64(11)).Return(int64(5), nil).Once()

	rec := app.do(t, http.MethodPost, "/complete_lesson/11", url.Values{}, alice)
	assertRedirectFlash(t, rec, "/course/5", middleware.FlashSuccess, "Lesson marked as complete.")
}

func TestQuizController_TakeQuiz(t *testing.T) {
	app := newTestApp(t)
	quizzes := new(MockQuizService)
	ctrl := NewQuizController(quizzes, zerolog.Nop())
	app.router.POST("/take_quiz/:lesson_id", ctrl.TakeQuiz)

	quizzes.On("SubmitAnswer", mock.Anything, alice, int64(11), "b").
		Return(&dto.TakeQuizResult{Correct: true, CorrectOption: "B", CourseID: 7}, nil).Once()
	quizzes.On("SubmitAnswer", mock.Anything, alice, int64(11), "A").
		Return(&dto.TakeQuizResult{Correct: false, CorrectOption: "B", CourseID: 7}, nil).Once()

	rec := app.do(t, http.MethodPost, "/take_quiz/11", url.Values{"answer": {"b"}}, alice)
	assertRedirectFlash(t, rec, "/course/7", middleware.FlashSuccess, "Correct! Well done.")

	rec = app.do(t, http.MethodPost, "/take_quiz/11", url.Values{"answer": {"A"}}, alice)
	assertRedirectFlash(t, rec, "/course/7", middleware.FlashDanger, "Incorrect. The correct answer was B.")

	rec = app.do(t, http.MethodPost, "/take_quiz/11", url.Values{}, alice)
	assert.Equal(t, "/take_quiz/11", rec.Header().Get("Location"))

	quizzes.AssertExpectations(t)
}

func TestQuizController_ShowTakeQuizMissing(t *testing.T) {
	app := newTestApp(t)
	quizzes := new(MockQuizService)
	ctrl := NewQuizController(quizzes, zerolog.Nop())
	app.router.GET("/take_quiz/:lesson_id", ctrl.ShowTakeQuiz)

	quizzes.On("GetQuizForStudent", mock.Anything, alice, int64(11)).
		Return(nil, apperrors.NewCustomError(apperrors.ErrQuizNotFound, "No quiz available for this lesson yet.")).Once()

	rec := app.do(t, http.MethodGet, "/take_quiz/11", nil, alice)
	assertRedirectFlash(t, rec, "/dashboard", middleware.FlashWarning, "No quiz available for this lesson yet.")
}

func TestHomeController_Health(t *testing.T) {
	app := newTestApp(t)
	app.router.GET("/health", NewHomeController(pingFunc(func() error { return nil }), zerolog.Nop()).Health)
	app.router.GET("/health_down", NewHomeController(pingFunc(func() error { return assert.AnError }), zerolog.Nop()).Health)

	rec := app.do(t, http.MethodGet, "/health", nil, appAuth.Identity{})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/health_down", nil, appAuth.Identity{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
