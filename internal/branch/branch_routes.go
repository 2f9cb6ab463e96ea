package branch

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	branches := r.Group("/filiais")
	{
		branches.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		branches.GET("/funcionarios",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.SelectAssignments,
		)

		branches.GET("/:id",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		branches.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		branches.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		branches.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Delete,
		)
	}

	assignments := r.Group("/filiais-funcionarios")
	{
		assignments.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.SaveAssignment,
		)

		assignments.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.SaveAssignment,
		)

		assignments.DELETE("",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.DeleteAssignment,
		)

		assignments.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.DeleteAssignment,
		)
	}
}
