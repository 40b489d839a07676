package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/utils/jwt"
	"github.com/nomuacademy/academy-server-go/pkg/response"
)

// User represents the authenticated user in middleware context
type User struct {
	ID             uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	Email          string         `gorm:"column:email" json:"email"`
	Name           string         `gorm:"column:name" json:"name"`
	LicenseNumber  string         `gorm:"column:license_number" json:"license_number"`
	Experience     int            `gorm:"column:experience" json:"experience"`
	Specialization pq.StringArray `gorm:"column:specialization;type:text[]" json:"specialization"`
	ProfileImage   *string        `gorm:"column:profile_image" json:"profile_image,omitempty"`
	IsAdmin        bool           `gorm:"column:is_admin" json:"is_admin"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Global instance to be initialized once at startup
var global *AuthMiddleware

// AuthMiddleware holds dependencies for authentication middleware
type AuthMiddleware struct {
	db        *gorm.DB
	jwtSecret string
	logger    *slog.Logger
}

// Initialize sets up the global middleware instance (call once at startup)
func Initialize(db *gorm.DB, jwtSecret string, logger *slog.Logger) {
	global = &AuthMiddleware{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// AuthenticateToken validates JWT tokens and loads user data into context.
func (m *AuthMiddleware) AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.ensureAuthenticated(c); !ok {
			return
		}
		c.Next()
	}
}

// OptionalAuthentication loads the user when a valid bearer token is present
// but never rejects the request. Routes that vary their answer by identity
// (course access checks) use this instead of AuthenticateToken.
func (m *AuthMiddleware) OptionalAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserFromContext(c); ok {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwt.VerifyToken(token, m.jwtSecret)
		if err != nil || claims.UserID == uuid.Nil {
			c.Next()
			return
		}

		var usr User
		if err := m.db.WithContext(c.Request.Context()).
			Table("users").
			First(&usr, "id = ?", claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		usrCopy := usr
		c.Set("user", &usrCopy)
		c.Set("userId", usr.ID)
		c.Next()
	}
}

// RequireAdmin rejects callers whose account is not admin-flagged. Must run
// after AuthenticateToken.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, ok := GetUserFromContext(c)
		if !ok {
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}

		if !usr.IsAdmin {
			response.ErrorWithLog(m.logger, c, http.StatusForbidden, "Access denied: Insufficient permissions.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuth combines authentication with the admin flag check.
func (m *AuthMiddleware) RequireAuth(adminOnly bool) []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{m.AuthenticateToken()}
	if adminOnly {
		handlers = append(handlers, m.RequireAdmin())
	}
	return handlers
}

// Global convenience functions - use these in route files

// AuthenticateToken is the global version for simple authentication
func AuthenticateToken() gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.AuthenticateToken()
}

// OptionalAuthentication is the global version for identity-optional routes
func OptionalAuthentication() gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.OptionalAuthentication()
}

// RequireAdmin is the global version for admin-flagged routes
func RequireAdmin() gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.RequireAdmin()
}

// RequireAuth is the global version combining authentication and admin check
func RequireAuth(adminOnly bool) []gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.RequireAuth(adminOnly)
}

// GetUserFromContext retrieves the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	if usr, ok := userVal.(*User); ok && usr != nil {
		return usr, true
	}

	if usr, ok := userVal.(User); ok {
		return &usr, true
	}

	return nil, false
}

func (m *AuthMiddleware) ensureAuthenticated(c *gin.Context) (*User, bool) {
	if usr, ok := GetUserFromContext(c); ok {
		return usr, true
	}

	token := bearerToken(c)
	if token == "" {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No token provided", nil)
		c.Abort()
		return nil, false
	}

	claims, err := jwt.VerifyToken(token, m.jwtSecret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Token expired", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token", err)
		}
		c.Abort()
		return nil, false
	}

	if claims.UserID == uuid.Nil {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token payload", nil)
		c.Abort()
		return nil, false
	}

	var usr User
	if err := m.db.WithContext(c.Request.Context()).
		Table("users").
		First(&usr, "id = ?", claims.UserID).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.ErrorWithLog(m.logger, c, http.StatusNotFound, "User not found", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		c.Abort()
		return nil, false
	}

	usrCopy := usr
	c.Set("user", &usrCopy)
	c.Set("userId", usr.ID)
	return &usrCopy, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
