package models

import "time"

// Progress is a student's completion state for one course, always
// computed from lesson and completion rows.
type Progress struct {
	UserID   int64
	CourseID int64
	Total    int
	Done     int
}

// Percent returns completion as a whole percentage
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}

// Complete reports whether every lesson of a non-empty course is done
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done == p.Total
}

// StudentProgress is one row of an instructor's course report
type StudentProgress struct {
	UserID     int64
	Name       string
	Email      string
	EnrolledAt time.Time
	Done       int
}
