package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HomeController serves the landing page and health check
type HomeController struct {
	db     Pinger
	logger zerolog.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(db Pinger, logger zerolog.Logger) *HomeController {
	return &HomeController{db: db, logger: logger}
}

// Index renders the landing page
func (c *HomeController) Index(ctx *gin.Context) {
	render(ctx, "index.html", "", nil)
}

// Health pings the database
func (c *HomeController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Error().Err(err).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
