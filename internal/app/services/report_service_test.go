package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestReportService_CourseProgressReport(t *testing.T) {
	ctx := context.Background()
	courses, lessons, progress := new(MockCourseRepository), new(MockLessonRepository), new(MockProgressRepository)
	svc := NewReportService(courses, lessons, progress, zerolog.Nop())

	courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)
	lessons.On("ListLessonsByCourse", ctx, int64(10)).Return([]*models.Lesson{{ID: 100}, {ID: 101}}, nil)
	progress.On("StudentProgress", ctx, int64(10)).Return([]*models.StudentProgress{
		{UserID: 3, Name: "Alice", Email: "alice@example.com", EnrolledAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Done: 2},
		{UserID: 4, Name: "Carol", Email: "carol@example.com", EnrolledAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Done: 1},
	}, nil)

	report, err := svc.CourseProgressReport(ctx, bob, 10)
	require.NoError(t, err)
	assert.Equal(t, "Intro_to_Python_progress.xlsx", report.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(report.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student", rows[0][0])
	assert.Equal(t, []string{"Alice", "alice@example.com", "2024-03-01", "2", "2", "100", "yes"}, rows[1])
	assert.Equal(t, []string{"Carol", "carol@example.com", "2024-03-02", "1", "2", "50", "no"}, rows[2])
}

func TestReportService_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	courses, lessons, progress := new(MockCourseRepository), new(MockLessonRepository), new(MockProgressRepository)
	svc := NewReportService(courses, lessons, progress, zerolog.Nop())
	courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)

	_, err := svc.CourseProgressReport(ctx, eve, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	progress.AssertNotCalled(t, "StudentProgress")
}
