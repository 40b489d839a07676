package aitool

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public tool directory endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	tools := router.Group("/ai-tools")
	{
		tools.GET("", handler.List)
		tools.GET("/:toolId", handler.GetByID)
	}
}

// RegisterAdminRoutes wires tool management endpoints behind the admin gate.
func RegisterAdminRoutes(router *gin.RouterGroup, handler *Handler) {
	tools := router.Group("/ai-tools")
	{
		tools.POST("", handler.Create)
		tools.PUT("/:toolId", handler.Update)
		tools.DELETE("/:toolId", handler.Delete)
		tools.POST("/:toolId/image", handler.UploadImage)
	}
}
