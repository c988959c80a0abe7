package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// UserController handles the profile page
type UserController struct {
	userService services.IUserService
	sessions    *middleware.AuthMiddleware
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.IUserService, sessions *middleware.AuthMiddleware, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
		logger:      logger,
	}
}

// ShowProfile renders the current user's profile
func (c *UserController) ShowProfile(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx.Request.Context(), middleware.CurrentIdentity(ctx).UserID)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/dashboard")
		return
	}
	render(ctx, "profile.html", "Profile", gin.H{"User": user})
}

// UpdateProfile saves profile changes and refreshes the session
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var form dto.ProfileForm
	if err := middleware.BindForm(ctx, &form); err != nil {
		middleware.HandlePageError(ctx, err, "/profile")
		return
	}

	picture, err := helpers.OptionalFormFile(ctx, "profile_pic")
	if err != nil {
		middleware.HandlePageError(ctx, err, "/profile")
		return
	}

	session, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.CurrentIdentity(ctx).UserID, &form, picture)
	if err != nil {
		middleware.HandlePageError(ctx, err, "/profile")
		return
	}

	c.sessions.SetSession(ctx, session.Token, session.ExpiresAt)
	middleware.RedirectWithFlash(ctx, middleware.FlashSuccess, "Profile updated.", "/profile")
}
