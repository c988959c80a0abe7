package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/auth"
)

const identityKey = "identity"

// AuthMiddleware reads and writes the signed session cookie
type AuthMiddleware struct {
	sessions   *auth.SessionManager
	cookieName string
	secure     bool
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *auth.SessionManager, cookieName string, secure bool, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
	}
}

// CurrentIdentity returns the identity attached by LoadIdentity, or an
// anonymous identity.
func CurrentIdentity(c *gin.Context) appAuth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(appAuth.Identity); ok {
			return id
		}
	}
	return appAuth.Identity{}
}

// LoadIdentity decodes the session cookie into an Identity for every
// request. Bad or expired cookies are dropped and the visitor continues
// anonymously.
func (m *AuthMiddleware) LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := m.sessions.Parse(token)
		if err != nil {
			if !errors.Is(err, auth.ErrExpiredSession) {
				m.logger.Warn().Err(err).Str("clientIP", c.ClientIP()).Msg("Rejected session cookie")
			}
			m.ClearSession(c)
			c.Next()
			return
		}

		c.Set(identityKey, appAuth.Identity{
			UserID: claims.UserID,
			Name:   claims.UserName,
			Role:   models.RoleType(claims.Role),
		})
		c.Next()
	}
}

// RequireSession sends anonymous visitors to the login page
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAuthenticated() {
			RedirectWithFlash(c, FlashWarning, "Please log in to continue.", "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired lets only users with role through. Others are sent to the
// dashboard with message.
func (m *AuthMiddleware) RoleRequired(role models.RoleType, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if !id.IsAuthenticated() {
			RedirectWithFlash(c, FlashWarning, "Please log in to continue.", "/login")
			c.Abort()
			return
		}

		if id.Role != role {
			m.logger.Info().Int64("userID", id.UserID).Str("role", id.Role.String()).
				Str("required", role.String()).Str("path", c.Request.URL.Path).Msg("Role check failed")
			RedirectWithFlash(c, FlashDanger, message, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SetSession stores a freshly issued token in the session cookie
func (m *AuthMiddleware) SetSession(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, maxAge, "/", "", m.secure, true)
}

// ClearSession removes the session cookie
func (m *AuthMiddleware) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	c.Set(identityKey, appAuth.Identity{})
}
