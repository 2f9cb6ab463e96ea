package feedback

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	feedbacks := r.Group("/feedbacks")
	{
		feedbacks.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		feedbacks.GET("/:id",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.Select,
		)

		feedbacks.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		feedbacks.POST("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Save,
		)

		feedbacks.DELETE("/:id",
			middleware.RateLimitByEmployee(0.2, 1),
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionWrite),
			handler.Delete,
		)
	}
}
