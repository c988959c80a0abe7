package auth

import (
	"github.com/yigit/learnhub/internal/app/models"
)

// Identity is the authenticated user attached to a request. The zero value
// is an anonymous visitor.
type Identity struct {
	UserID int64
	Name   string
	Role   models.RoleType
}

// IsAuthenticated reports whether the request carries a valid session
func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

// IsInstructor reports whether the user is a signed-in instructor
func (i Identity) IsInstructor() bool {
	return i.IsAuthenticated() && i.Role == models.RoleInstructor
}

// IsStudent reports whether the user is a signed-in student
func (i Identity) IsStudent() bool {
	return i.IsAuthenticated() && i.Role == models.RoleStudent
}

// CanCreateCourse allows any instructor to author courses
func CanCreateCourse(id Identity) bool {
	return id.IsInstructor()
}

// CanEditCourse allows only the instructor who owns the course. This also
// gates lesson management, deletion and the progress report.
func CanEditCourse(id Identity, course *models.Course) bool {
	return course != nil && id.IsInstructor() && course.InstructorID == id.UserID
}

// CanManageLesson applies the course ownership rule through a lesson
func CanManageLesson(id Identity, owner *models.LessonOwner) bool {
	return owner != nil && id.IsInstructor() && owner.InstructorID == id.UserID
}

// CanManageQuiz allows the instructor who owns the lesson's course
func CanManageQuiz(id Identity, owner *models.LessonOwner) bool {
	return CanManageLesson(id, owner)
}

// CanEnroll allows any signed-in user to enroll
func CanEnroll(id Identity) bool {
	return id.IsAuthenticated()
}

// CanTakeQuiz allows students only
func CanTakeQuiz(id Identity) bool {
	return id.IsStudent()
}

// CanCompleteLesson allows students only
func CanCompleteLesson(id Identity) bool {
	return id.IsStudent()
}

// CanViewCertificate allows a student whose own progress covers every
// lesson of a non-empty course.
func CanViewCertificate(id Identity, progress models.Progress) bool {
	return id.IsStudent() && progress.UserID == id.UserID && progress.Complete()
}
