package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Instructor ")
	assert.True(t, ok)
	assert.Equal(t, RoleInstructor, role)

	role, ok = ParseRole("student")
	assert.True(t, ok)
	assert.Equal(t, RoleStudent, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		percent  int
		complete bool
	}{
		{"empty course", Progress{Total: 0, Done: 0}, 0, false},
		{"half done", Progress{Total: 2, Done: 1}, 50, false},
		{"thirds round down", Progress{Total: 3, Done: 2}, 66, false},
		{"all done", Progress{Total: 2, Done: 2}, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.percent, tt.progress.Percent())
			assert.Equal(t, tt.complete, tt.progress.Complete())
		})
	}
}

func TestQuiz_IsCorrect(t *testing.T) {
	q := &Quiz{CorrectOption: "B", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4"}

	assert.True(t, q.IsCorrect("B"))
	assert.True(t, q.IsCorrect(" b "))
	assert.False(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect(""))

	opts := q.Options()
	assert.Len(t, opts, 4)
	assert.Equal(t, "B", opts[1].Letter)
	assert.Equal(t, "2", opts[1].Text)
}

func TestCourse_ThumbnailName(t *testing.T) {
	c := &Course{}
	assert.Empty(t, c.ThumbnailName())

	name := "cover.png"
	c.Thumbnail = &name
	assert.Equal(t, "cover.png", c.ThumbnailName())
}
