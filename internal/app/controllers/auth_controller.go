package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// AuthController handles sign-up, login and logout
type AuthController struct {
	authService services.IAuthService
	sessions    *middleware.AuthMiddleware
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.IAuthService, sessions *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// ShowSignup renders the sign-up form
func (c *AuthController) ShowSignup(ctx *gin.Context) {
	render(ctx, "signup.html", "Sign up", nil)
}

// Signup creates an account
func (c *AuthController) Signup(ctx *gin.Context) {
	var form dto.SignupForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, "/signup")
		return
	}

	if _, err := c.authService.Register(ctx.Request.Context(), &form); err != nil {
		middleware.HandlePageError(ctx, err, "/signup")
		return
	}

	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Account created! Please sign in.", "/login")
}

// ShowLogin renders the login form
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, "login.html", "Log in", nil)
}

// Login checks credentials and starts a session
func (c *AuthController) Login(ctx *gin.Context) {
	var form dto.LoginForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, "/login")
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), &form, ctx.ClientIP())
	if err != nil {
		middleware.HandlePageError(ctx, err, "/login")
		return
	}

	c.sessions.SetSession(ctx, session.Token, session.ExpiresAt)
	c.logger.Info().Int64("userID", session.User.ID).Msg("User logged in")
	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Login successful!", "/dashboard")
}

// Logout clears the session whether or not one exists
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.ClearSession(ctx)
	middleware.RedirectWithFlash(ctx, middleware.FlashInfo, "You have been logged out.", "/login")
}
