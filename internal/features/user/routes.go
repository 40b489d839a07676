package user

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/middleware"
)

// RegisterRoutes wires user profile endpoints.
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, logger *slog.Logger) {
	handler := NewHandler(db, logger)

	users := router.Group("/users")
	users.Use(middleware.AuthenticateToken())
	{
		users.GET("/profile", handler.Profile)
		users.PUT("/profile", handler.UpdateProfile)
		users.GET("/stats", handler.Stats)
	}
}
