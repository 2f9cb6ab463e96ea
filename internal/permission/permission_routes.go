package permission

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	permissions := r.Group("/permissoes")
	{
		permissions.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		permissions.GET("/options",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Options,
		)

		permissions.GET("/:id",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		permissions.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		permissions.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		permissions.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.SoftDelete,
		)
	}
}
