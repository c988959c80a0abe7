package models

import (
	"strings"
	"time"
)

// QuizOption is one lettered answer choice
type QuizOption struct {
	Letter string
	Text   string
}

// QuizLetters are the valid answer letters in display order
var QuizLetters = []string{"A", "B", "C", "D"}

// Quiz is the single multiple-choice question attached to a lesson.
type Quiz struct {
	ID            int64     `db:"id"`
	LessonID      int64     `db:"lesson_id"`
	Question      string    `db:"question"`
	OptionA       string    `db:"option_a"`
	OptionB       string    `db:"option_b"`
	OptionC       string    `db:"option_c"`
	OptionD       string    `db:"option_d"`
	CorrectOption string    `db:"correct_option"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Options returns the answer choices in A-D order
func (q *Quiz) Options() []QuizOption {
	return []QuizOption{
		{Letter: "A", Text: q.OptionA},
		{Letter: "B", Text: q.OptionB},
		{Letter: "C", Text: q.OptionC},
		{Letter: "D", Text: q.OptionD},
	}
}

// NormalizeOption trims and upper-cases a submitted answer letter
func NormalizeOption(answer string) string {
	return strings.ToUpper(strings.TrimSpace(answer))
}

// IsCorrect compares a submitted letter with the stored answer
func (q *Quiz) IsCorrect(answer string) bool {
	return NormalizeOption(answer) == q.CorrectOption
}
