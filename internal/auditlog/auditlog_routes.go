package auditlog

import (
	"go-hr-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	logs := r.Group("/logs")
	{
		logs.GET("",
			middleware.RBACAuthorize(rbacService, ResourceName, middleware.ActionRead),
			handler.List,
		)
	}
}
