package role

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	roles := r.Group("/cargos")
	{
		roles.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		roles.GET("/options",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Options,
		)

		roles.GET("/:id",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		roles.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		roles.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		roles.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Delete,
		)
	}
}
