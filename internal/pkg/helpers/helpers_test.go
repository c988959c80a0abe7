package helpers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for path, want := range map[string]int64{"/c/42": 42, "/c/0": 0, "/c/-3": 0, "/c/abc": 0} {
		r := gin.New()
		var got int64
		var ok bool
		r.GET("/c/:id", func(ctx *gin.Context) { got, ok = ParseIDParam(ctx, "id") })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, want, got, path)
		assert.Equal(t, want > 0, ok, path)
	}
}

func TestOptionalFormFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Go"))
	part, err := w.CreateFormFile("thumbnail", "cover.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, w.Close())

	r := gin.New()
	var thumb, missing *multipart.FileHeader
	r.POST("/", func(ctx *gin.Context) {
		thumb, _ = OptionalFormFile(ctx, "thumbnail")
		missing, _ = OptionalFormFile(ctx, "profile_pic")
	})

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, thumb)
	assert.Equal(t, "cover.png", thumb.Filename)
	assert.Nil(t, missing)
}
