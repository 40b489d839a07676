package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nomuacademy/academy-server-go/internal/middleware"
)

// RegisterRoutes attaches authentication endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/me", middleware.AuthenticateToken(), handler.Me)
	}
}
