package dto

// SignupForm is posted by /signup
type SignupForm struct {
	Name            string `form:"name" binding:"required,max=100"`
	Email           string `form:"email" binding:"required,email,max=254"`
	Password        string `form:"password" binding:"required,max=72"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
	Role            string `form:"role" binding:"required"`
}

// LoginForm is posted by /login
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// CourseForm is posted by /create_course and /course/:id/edit. The
// thumbnail travels as a separate multipart file.
type CourseForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"max=5000"`
}

// LessonForm is posted by /course/:id/add_lesson
type LessonForm struct {
	Title    string `form:"title" binding:"required,max=200"`
	Content  string `form:"content"`
	VideoURL string `form:"video_url" binding:"omitempty,url"`
	Order    string `form:"lesson_order" binding:"omitempty,numeric"`
}

// QuizForm is posted by /add_quiz/:lesson_id
type QuizForm struct {
	Question      string `form:"question" binding:"required"`
	OptionA       string `form:"option_a" binding:"required"`
	OptionB       string `form:"option_b" binding:"required"`
	OptionC       string `form:"option_c" binding:"required"`
	OptionD       string `form:"option_d" binding:"required"`
	CorrectOption string `form:"correct_option" binding:"required,oneof=A B C D a b c d"`
}

// QuizAnswerForm is posted by /take_quiz/:lesson_id
type QuizAnswerForm struct {
	Answer string `form:"answer" binding:"required"`
}

// ProfileForm is posted by /profile
type ProfileForm struct {
	Name  string `form:"name" binding:"required,max=100"`
	Email string `form:"email" binding:"required,email,max=254"`
}
