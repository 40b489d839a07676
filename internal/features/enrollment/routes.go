package enrollment

import (
	"github.com/gin-gonic/gin"

	"github.com/nomuacademy/academy-server-go/internal/middleware"
)

// RegisterRoutes wires member-facing enrollment endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	enrollments := router.Group("/enrollments")
	enrollments.Use(middleware.AuthenticateToken())
	{
		enrollments.POST("", handler.Create)
		enrollments.GET("/my", handler.List)
		enrollments.GET("/status/:courseId", handler.Status)
		enrollments.POST("/wishlist", handler.AddWishlist)
		enrollments.GET("/wishlist", handler.ListWishlist)
		enrollments.DELETE("/wishlist/:courseId", handler.RemoveWishlist)
	}

	// Access checks answer for anonymous callers too.
	router.GET("/courses/:courseId/access", middleware.OptionalAuthentication(), handler.Access)
}

// RegisterAdminRoutes wires enrollment review endpoints. The caller mounts
// these behind the admin gate.
func RegisterAdminRoutes(router *gin.RouterGroup, handler *AdminHandler) {
	enrollments := router.Group("/enrollments")
	{
		enrollments.GET("", handler.ListAll)
		enrollments.GET("/stats", handler.Stats)
		enrollments.PUT("/:id/status", handler.UpdateStatus)
	}
}
