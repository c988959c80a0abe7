package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// GenericErrorMessage is shown for every failure without a user-facing message
const GenericErrorMessage = "Something went wrong, please try again."

// flashCategory picks how loudly an error is shown
func flashCategory(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrCertificateNotEarned,
		apperrors.ErrResourceNotFound, apperrors.ErrUnauthenticated):
		return FlashWarning
	default:
		return FlashDanger
	}
}

// HandlePageError turns a handler error into a flash message and a redirect
// to redirectTo. Errors carrying a user-facing message show it; anything
// else is logged and replaced with a generic message, so raw error text
// never reaches the page.
func HandlePageError(c *gin.Context, err error, redirectTo string) {
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		redirectTo = "/login"
	}

	if msg, ok := apperrors.UserMessage(err); ok {
		RedirectWithFlash(c, flashCategory(err), msg, redirectTo)
		return
	}

	_ = c.Error(err)
	logger.Error().Err(err).
		Str("requestID", RequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error while serving page")
	RedirectWithFlash(c, FlashDanger, GenericErrorMessage, redirectTo)
}

// Recovery replaces gin's default recovery so a panic ends on an error
// page rather than an empty response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("requestID", RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.String(http.StatusInternalServerError, GenericErrorMessage)
	})
}
