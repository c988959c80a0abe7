package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestLessonService_AddLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("owner adds ordered lesson", func(t *testing.T) {
		courses, lessons := new(MockCourseRepository), new(MockLessonRepository)
		svc := NewLessonService(courses, lessons, zerolog.Nop())
		courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)
		lessons.On("CreateLesson", ctx, mock.MatchedBy(func(l *models.Lesson) bool {
			return l.CourseID == 10 && l.Title == "Variables" && l.Order != nil && *l.Order == 3
		})).Return(int64(100), nil)

		_, err := svc.AddLesson(ctx, bob, 10, &dto.LessonForm{Title: "Variables", Order: "3"})
		require.NoError(t, err)
		lessons.AssertExpectations(t)
	})

	t.Run("blank order stays unset", func(t *testing.T) {
		courses, lessons := new(MockCourseRepository), new(MockLessonRepository)
		svc := NewLessonService(courses, lessons, zerolog.Nop())
		courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)
		lessons.On("CreateLesson", ctx, mock.MatchedBy(func(l *models.Lesson) bool {
			return l.Order == nil
		})).Return(int64(101), nil)

		_, err := svc.AddLesson(ctx, bob, 10, &dto.LessonForm{Title: "Loops"})
		require.NoError(t, err)
	})

	t.Run("fractional order rejected", func(t *testing.T) {
		courses, lessons := new(MockCourseRepository), new(MockLessonRepository)
		svc := NewLessonService(courses, lessons, zerolog.Nop())
		courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)

		_, err := svc.AddLesson(ctx, bob, 10, &dto.LessonForm{Title: "Loops", Order: "1.5"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		lessons.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		courses, lessons := new(MockCourseRepository), new(MockLessonRepository)
		svc := NewLessonService(courses, lessons, zerolog.Nop())
		courses.On("GetCourseByID", ctx, int64(10)).Return(bobsCourse(), nil)

		_, err := svc.AddLesson(ctx, eve, 10, &dto.LessonForm{Title: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Equal(t, "You do not have permission to modify this course.", err.Error())
	})
}

func TestLessonService_DeleteLesson(t *testing.T) {
	ctx := context.Background()
	owner := &models.LessonOwner{LessonID: 100, CourseID: 10, InstructorID: bob.UserID}

	courses, lessons := new(MockCourseRepository), new(MockLessonRepository)
	svc := NewLessonService(courses, lessons, zerolog.Nop())
	lessons.On("GetLessonOwner", ctx, int64(100)).Return(owner, nil)
	lessons.On("GetLessonOwner", ctx, int64(404)).Return(nil, apperrors.ErrLessonNotFound)
	lessons.On("DeleteLesson", ctx, int64(100)).Return(nil)

	_, err := svc.DeleteLesson(ctx, eve, 100)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.DeleteLesson(ctx, bob, 404)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	courseID, err := svc.DeleteLesson(ctx, bob, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(10), courseID)
	lessons.AssertNumberOfCalls(t, "DeleteLesson", 1)
}
