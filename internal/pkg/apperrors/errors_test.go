package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_UnwrapsToSentinel(t *testing.T) {
	err := NewForbiddenError("You do not have permission to modify this course.")

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, "You do not have permission to modify this course.", err.Error())

	wrapped := fmt.Errorf("update course: %w", err)
	msg, ok := UserMessage(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "You do not have permission to modify this course.", msg)
}

func TestUserMessage_PlainError(t *testing.T) {
	_, ok := UserMessage(ErrCourseNotFound)
	assert.False(t, ok)
}

func TestIs_MatchesAnyTarget(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrLessonNotFound)

	assert.True(t, Is(err, ErrCourseNotFound, ErrLessonNotFound))
	assert.False(t, Is(err, ErrCourseNotFound, ErrQuizNotFound))
}

func TestCustomError_FallsBackToSentinelText(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "")

	assert.Equal(t, "validation failed", err.Error())
	_, ok := UserMessage(err)
	assert.False(t, ok)
}

func TestNotFoundVariantsMatchResourceNotFound(t *testing.T) {
	for _, err := range []error{ErrCourseNotFound, ErrLessonNotFound, ErrQuizNotFound, ErrUserNotFound} {
		assert.ErrorIs(t, err, ErrResourceNotFound)
	}
	assert.ErrorIs(t, ErrAlreadyEnrolled, ErrConflict)
	assert.NotErrorIs(t, ErrCourseNotFound, ErrLessonNotFound)
}
