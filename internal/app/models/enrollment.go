package models

import "time"

// Enrollment registers a user in a course
type Enrollment struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	CourseID  int64     `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CompletedLesson records that a user finished a lesson
type CompletedLesson struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	LessonID    int64     `db:"lesson_id"`
	CompletedAt time.Time `db:"completed_at"`
}
