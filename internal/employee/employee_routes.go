package employee

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	employees := r.Group("/funcionarios")
	{
		employees.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		employees.GET("/:id",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		employees.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		employees.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		employees.PUT("/:id/permissoes",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.SetPermissions,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.SoftDelete,
		)
	}
}
