package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CourseController handles course pages and authoring
type CourseController struct {
	courseService services.ICourseService
	reportService services.IReportService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.ICourseService, reportService services.IReportService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		reportService: reportService,
		logger:        logger,
	}
}

// Dashboard lists the user's own courses
func (c *CourseController) Dashboard(ctx *gin.Context) {
	cards, err := c.courseService.Dashboard(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandlePageError(ctx, err, "/")
		return
	}
	render(ctx, "dashboard.html", "Dashboard", gin.H{"Courses": cards})
}

// ListCourses renders the catalogue, optionally filtered by ?search=
func (c *CourseController) ListCourses(ctx *gin.Context) {
	search := ctx.Query("search")
	courses, err := c.courseService.ListCourses(ctx.Request.Context(), search)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/")
		return
	}
	render(ctx, "courses.html", "Courses", gin.H{"Courses": courses, "Search": search})
}

// CourseDetails renders one course with its lessons
func (c *CourseController) CourseDetails(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		ctx.String(http.StatusNotFound, "Course not found")
		return
	}

	details, err := c.courseService.GetCourseDetails(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			ctx.String(http.StatusNotFound, "Course not found")
			return
		}
		middleware.HandlePageError(ctx, err, "/courses")
		return
	}

	render(ctx, "course_details.html", details.Course.Title, gin.H{"Details": details})
}

// ShowCreateCourse renders the new course form
func (c *CourseController) ShowCreateCourse(ctx *gin.Context) {
	render(ctx, "create_course.html", "Create course", nil)
}

// CreateCourse stores a new course
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var form dto.CourseForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, "/create_course")
		return
	}

	thumbnail, err := helpers.OptionalFormFile(ctx, "thumbnail")
	if err != nil {
		middleware.HandlePageError(ctx, err, "/create_course")
		return
	}

	if _, err := c.courseService.CreateCourse(ctx.Request.Context(), middleware.CurrentIdentity(ctx), &form, thumbnail); err != nil {
		middleware.HandlePageError(ctx, err, "/create_course")
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Course created successfully!", "/dashboard")
}

// ShowEditCourse renders the edit form for the course owner
func (c *CourseController) ShowEditCourse(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, "Permission denied.", "/dashboard")
		return
	}

	course, err := c.courseService.GetCourseForEdit(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	render(ctx, "edit_course.html", "Edit course", gin.H{"Course": course})
}

// EditCourse saves the edit form
func (c *CourseController) EditCourse(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, "Permission denied.", "/dashboard")
		return
	}
	back := fmt.Sprintf("/course/%d/edit", courseID)

	var form dto.CourseForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, back)
		return
	}

	thumbnail, err := helpers.OptionalFormFile(ctx, "thumbnail")
	if err != nil {
		middleware.HandlePageError(ctx, err, back)
		return
	}

	_, err = c.courseService.UpdateCourse(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID, &form, thumbnail)
	if err != nil {
		target := back
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			target = "/dashboard"
		}
		middleware.HandlePageError(ctx, err, target)
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Course updated successfully!", "/dashboard")
}

// DeleteCourse removes a course and everything in it
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, "Permission denied.", "/dashboard")
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID); err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashInfo, "Course deleted successfully.", "/dashboard")
}

// Report downloads the course progress workbook
func (c *CourseController) Report(ctx *gin.Context) {
	courseID, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.RedirectWithFlash(ctx, middleware.FlashDanger, "Permission denied.", "/dashboard")
		return
	}

	report, err := c.reportService.CourseProgressReport(ctx.Request.Context(), middleware.CurrentIdentity(ctx), courseID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	ctx.Data(http.StatusOK, xlsxContentType, report.Content)
}
