package rbac

import (
	"net/http"
	"strings"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/middleware"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	employeeID := c.GetInt64(middleware.ContextEmployeeID)
	allowed, err := h.service.Enforce(domain.EnforceRequest{
		EmployeeID: employeeID,
		Resource:   strings.TrimSpace(req.Resource),
		Action:     req.Action,
	})
	if err != nil {
		h.logger.Error("rbac enforce failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed})
}

func (h *Handler) Permissions(c *gin.Context) {
	employeeID := c.GetInt64(middleware.ContextEmployeeID)
	permissions, err := h.service.Permissions(employeeID)
	if err != nil {
		h.logger.Error("rbac permissions failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Permissions: permissions})
}
