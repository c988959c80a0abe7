// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/middleware"
)

// render writes a page template with the data every layout needs: the
// current identity, pending flashes and the page title.
func render(ctx *gin.Context, name, title string, data gin.H) {
	renderStatus(ctx, http.StatusOK, name, title, data)
}

func renderStatus(ctx *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Identity"] = middleware.CurrentIdentity(ctx)
	data["Flashes"] = middleware.ConsumeFlashes(ctx)
	ctx.HTML(status, name, data)
}
