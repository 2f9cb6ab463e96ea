package employee

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

// Select answers one employee when id or email is given, otherwise a page.
func (h *Handler) Select(c *gin.Context) {
	params, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	criteria := SearchCriteria{
		ListParams: params,
		Name:       query.OptionalString(c, "nome"),
		Email:      query.OptionalString(c, "email"),
		BirthDate:  query.OptionalString(c, "nascimento"),
	}
	ctx := c.Request.Context()

	if criteria.IdentifiesOne() {
		e, err := h.service.FindOne(ctx, criteria)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
			return
		}
		response.Success(c, http.StatusOK, e)
		return
	}

	results, total, err := h.service.Search(ctx, criteria)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	response.List(c, results, total)
}

func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save employee bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidPayload)
		return
	}

	if raw := c.Param("id"); raw != "" {
		id, err := query.PathID(c, "id")
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("Id"))
			return
		}
		req.Employee.ID = &id
	}

	saved, err := h.service.Save(c.Request.Context(), *req.Employee)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if saved == nil {
		response.NoContent(c)
		return
	}
	response.Success(c, http.StatusOK, saved)
}

func (h *Handler) SoftDelete(c *gin.Context) {
	id, err := query.PathID(c, "id")
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Id"))
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) SetPermissions(c *gin.Context) {
	id, err := query.PathID(c, "id")
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Id"))
		return
	}

	var req SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set employee permissions bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidPayload)
		return
	}

	e, err := h.service.SetPermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}
