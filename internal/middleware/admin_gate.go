package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/nomuacademy/academy-server-go/pkg/response"
)

// AdminGate guards the admin surface with a shared secret. The secret is
// accepted from the admin-password header, the adminPassword body field, or
// the adminPassword query parameter, in that order. Comparison is
// constant-time.
type AdminGate struct {
	secret []byte
	logger *slog.Logger
}

// NewAdminGate creates an admin gate for the given shared secret.
func NewAdminGate(secret string, logger *slog.Logger) *AdminGate {
	return &AdminGate{secret: []byte(secret), logger: logger}
}

// Handler validates the shared secret on every request it wraps.
func (g *AdminGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := g.extractSecret(c)
		if candidate == "" {
			response.ErrorWithLog(g.logger, c, http.StatusUnauthorized, "Admin password required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(candidate), g.secret) != 1 {
			response.ErrorWithLog(g.logger, c, http.StatusUnauthorized, "Invalid admin password", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Verify is the admin console's credential check. Reaching it means the
// gate already accepted the secret, so it only confirms.
func (g *AdminGate) Verify(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"authenticated": true}, "관리자 인증에 성공했습니다.", nil)
}

func (g *AdminGate) extractSecret(c *gin.Context) string {
	if header := c.GetHeader("admin-password"); header != "" {
		return header
	}

	if query := c.Query("adminPassword"); query != "" {
		return query
	}

	// Peek at the JSON body without consuming it for downstream handlers.
	if c.Request.Body != nil {
		raw, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			var body struct {
				AdminPassword string `json:"adminPassword"`
			}
			if json.Unmarshal(raw, &body) == nil && body.AdminPassword != "" {
				return body.AdminPassword
			}
		}
	}

	return ""
}
