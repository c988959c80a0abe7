package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Password   string    `db:"password"` // bcrypt hash
	Role       RoleType  `db:"role"`
	ProfilePic *string   `db:"profile_pic"`
	CreatedAt  time.Time `db:"created_at"`
}

// IsInstructor reports whether the user authors courses
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}
