package course

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public catalog endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	courses := router.Group("/courses")
	{
		courses.GET("", handler.List)
		courses.GET("/:courseId", handler.GetByID)
	}
}

// RegisterAdminRoutes wires course management endpoints. The caller is
// responsible for mounting these behind the admin gate.
func RegisterAdminRoutes(router *gin.RouterGroup, handler *AdminHandler) {
	courses := router.Group("/courses")
	{
		courses.GET("", handler.ListAll)
		courses.GET("/:courseId", handler.GetByID)
		courses.POST("", handler.Create)
		courses.PUT("/:courseId", handler.Update)
		courses.PATCH("/:courseId/publish", handler.Publish)
		courses.DELETE("/:courseId", handler.Delete)
		courses.POST("/:courseId/video", handler.UploadVideo)
		courses.POST("/:courseId/thumbnail", handler.UploadThumbnail)
	}
}
