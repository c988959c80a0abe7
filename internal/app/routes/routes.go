package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/controllers"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/middleware"
)

// Controllers groups every page controller the router mounts
type Controllers struct {
	Home     *controllers.HomeController
	Auth     *controllers.AuthController
	Course   *controllers.CourseController
	Lesson   *controllers.LessonController
	Learning *controllers.LearningController
	Quiz     *controllers.QuizController
	User     *controllers.UserController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	staticFS http.FileSystem,
	uploadDir string,
) {
	router.StaticFS("/static", staticFS)
	router.Static("/uploads", uploadDir)

	router.GET("/health", ctrl.Home.Health)

	pages := router.Group("")
	pages.Use(authMiddleware.LoadIdentity())

	// --- Public pages ---
	pages.GET("/", ctrl.Home.Index)
	pages.GET("/signup", ctrl.Auth.ShowSignup)
	pages.POST("/signup", ctrl.Auth.Signup)
	pages.GET("/login", ctrl.Auth.ShowLogin)
	pages.POST("/login", ctrl.Auth.Login)
	pages.GET("/logout", ctrl.Auth.Logout)
	pages.GET("/courses", ctrl.Course.ListCourses)
	pages.GET("/course/:id", ctrl.Course.CourseDetails)

	// --- Any signed-in user ---
	session := pages.Group("")
	session.Use(authMiddleware.RequireSession())
	{
		session.GET("/dashboard", ctrl.Course.Dashboard)
		session.GET("/profile", ctrl.User.ShowProfile)
		session.POST("/profile", ctrl.User.UpdateProfile)
		session.POST("/enroll/:course_id", ctrl.Learning.Enroll)

		// Ownership is checked per course in the services
		session.GET("/course/:id/edit", ctrl.Course.ShowEditCourse)
		session.POST("/course/:id/edit", ctrl.Course.EditCourse)
		session.POST("/course/:id/delete", ctrl.Course.DeleteCourse)
		session.GET("/course/:id/report", ctrl.Course.Report)
		session.GET("/course/:id/add_lesson", ctrl.Lesson.ShowAddLesson)
		session.POST("/course/:id/add_lesson", ctrl.Lesson.AddLesson)
		session.POST("/lesson/:id/delete", ctrl.Lesson.DeleteLesson)
	}

	// --- Instructors ---
	instructors := pages.Group("")
	instructors.Use(authMiddleware.RoleRequired(models.RoleInstructor, "Access denied. Instructors only."))
	{
		instructors.GET("/create_course", ctrl.Course.ShowCreateCourse)
		instructors.POST("/create_course", ctrl.Course.CreateCourse)
		instructors.GET("/add_quiz/:lesson_id", ctrl.Quiz.ShowAddQuiz)
		instructors.POST("/add_quiz/:lesson_id", ctrl.Quiz.AddQuiz)
	}

	// --- Students ---
	students := pages.Group("")
	students.Use(authMiddleware.RoleRequired(models.RoleStudent, "Only students can do that."))
	{
		students.GET("/take_quiz/:lesson_id", ctrl.Quiz.ShowTakeQuiz)
		students.POST("/take_quiz/:lesson_id", ctrl.Quiz.TakeQuiz)
		students.POST("/complete_lesson/:lesson_id", ctrl.Learning.CompleteLesson)
		students.GET("/certificate/:course_id", ctrl.Learning.Certificate)
	}
}
