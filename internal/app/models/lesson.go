package models

import "time"

// Lesson is an ordered content item inside a course.
type Lesson struct {
	ID        int64     `db:"id"`
	CourseID  int64     `db:"course_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	VideoURL  string    `db:"video_url"`
	Order     *int      `db:"lesson_order"`
	CreatedAt time.Time `db:"created_at"`

	// HasQuiz is filled when lessons are listed for a course page
	HasQuiz bool `db:"has_quiz"`
}

// LessonOwner ties a lesson to its course and the course's instructor
type LessonOwner struct {
	LessonID     int64 `db:"lesson_id"`
	CourseID     int64 `db:"course_id"`
	InstructorID int64 `db:"instructor_id"`
}
