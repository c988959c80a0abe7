package models

import "time"

// Course is a unit of instruction authored by one instructor.
type Course struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	InstructorID int64     `db:"instructor_id"`
	Thumbnail    *string   `db:"thumbnail"`
	CreatedAt    time.Time `db:"created_at"`

	// Populated by joins
	InstructorName string `db:"instructor_name"`
}

// ThumbnailName returns the stored thumbnail filename or ""
func (c *Course) ThumbnailName() string {
	if c.Thumbnail == nil {
		return ""
	}
	return *c.Thumbnail
}
