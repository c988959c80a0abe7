package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Flash categories understood by the layout template
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const (
	flashCookieName = "learnhub_flash"
	flashContextKey = "flashes"
)

// Flash is a one-time message shown on the next rendered page
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// pendingFlashes returns the flashes queued so far, starting from any the
// browser carried in from a previous redirect.
func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashContextKey); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}

	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

func writeFlashCookie(c *gin.Context, flashes []Flash) {
	c.SetSameSite(http.SameSiteLaxMode)
	if len(flashes) == 0 {
		c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
		return
	}

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(data), 0, "/", "", false, true)
}

// AddFlash queues a message for the next page the user sees
func AddFlash(c *gin.Context, category, message string) {
	flashes := append(pendingFlashes(c), Flash{Category: category, Message: message})
	c.Set(flashContextKey, flashes)
	writeFlashCookie(c, flashes)
}

// ConsumeFlashes returns every queued message and clears the queue
func ConsumeFlashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	c.Set(flashContextKey, []Flash{})
	if len(flashes) > 0 {
		writeFlashCookie(c, nil)
	}
	return flashes
}

// RedirectWithFlash queues a message and redirects
func RedirectWithFlash(c *gin.Context, category, message, location string) {
	AddFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}
