package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := NewAdminGate(secret, logger)

	router := gin.New()
	router.POST("/admin/ping", gate.Handler(), func(c *gin.Context) {
		// Downstream handlers must still be able to read the body after
		// the gate peeked at it.
		body, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})
	return router
}

func TestAdminGate_HeaderSecret(t *testing.T) {
	router := newGateRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/admin/ping", nil)
	req.Header.Set("admin-password", "s3cret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGate_QuerySecret(t *testing.T) {
	router := newGateRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/admin/ping?adminPassword=s3cret", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGate_BodySecretAndBodyReplay(t *testing.T) {
	router := newGateRouter(t, "s3cret")

	payload := `{"adminPassword":"s3cret","status":"approved"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/ping", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The handler must see the untouched body.
	assert.True(t, strings.Contains(rec.Body.String(), `"status":"approved"`))
}

func TestAdminGate_VerifyEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := NewAdminGate("s3cret", logger)

	router := gin.New()
	router.POST("/admin/auth", gate.Handler(), gate.Verify)

	req := httptest.NewRequest(http.MethodPost, "/admin/auth", bytes.NewBufferString(`{"adminPassword":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"authenticated":true`))

	req = httptest.NewRequest(http.MethodPost, "/admin/auth", bytes.NewBufferString(`{"adminPassword":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGate_MissingSecret(t *testing.T) {
	router := newGateRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGate_WrongSecret(t *testing.T) {
	router := newGateRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/admin/ping", nil)
	req.Header.Set("admin-password", "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
