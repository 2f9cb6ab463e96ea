package auth

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public login route and the authenticated session routes.
func RegisterRoutes(public, protected *gin.RouterGroup, handler *Handler) {
	public.POST("/login", middleware.RateLimitByIP(0.1, 5), handler.Login)

	protected.GET("/me", middleware.RateLimitByEmployee(2, 5), handler.Me)
	protected.POST("/logout", handler.Logout)
}
