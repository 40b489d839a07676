package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSizeLimitRouter(maxBytes, uploadMaxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestSizeLimitWithUploads(maxBytes, uploadMaxBytes))
	router.POST("/upload", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestSizeLimit_RejectsOversizedBody(t *testing.T) {
	router := newSizeLimitRouter(16, 1024)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRequestSizeLimit_MultipartUsesUploadCap(t *testing.T) {
	router := newSizeLimitRouter(16, 1024)

	// Larger than the body cap but within the upload cap.
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestSizeLimit_MultipartStillBounded(t *testing.T) {
	router := newSizeLimitRouter(16, 32)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
