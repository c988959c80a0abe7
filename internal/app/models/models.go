package models

import "strings"

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleInstructor RoleType = "instructor"
)

// ParseRole maps a submitted role value onto a known RoleType
func ParseRole(value string) (RoleType, bool) {
	switch RoleType(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleInstructor:
		return RoleInstructor, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer
func (r RoleType) String() string {
	return string(r)
}
