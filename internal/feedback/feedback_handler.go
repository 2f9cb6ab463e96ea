package feedback

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
	l := zap.L().Named("feedback.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("feedback request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) Select(c *gin.Context) {
	params, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	employeeID, errEmployee := query.OptionalID(c, "funcionario")
	branchID, errBranch := query.OptionalID(c, "filial")
	if errEmployee != nil || errBranch != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	ctx := c.Request.Context()

	if params.ID != 0 {
		f, err := h.service.Get(ctx, params.ID)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
			return
		}
		response.Success(c, http.StatusOK, f)
		return
	}

	results, total, err := h.service.Search(ctx, SearchCriteria{
		ListParams: params,
		EmployeeID: employeeID,
		BranchID:   branchID,
	})
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	response.List(c, results, total)
}

func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save feedback bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidPayload)
		return
	}

	if raw := c.Param("id"); raw != "" {
		id, err := query.PathID(c, "id")
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("Id"))
			return
		}
		req.Feedback.ID = &id
	}

	saved, err := h.service.Save(c.Request.Context(), *req.Feedback)
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

func (h *Handler) Delete(c *gin.Context) {
	id, err := query.PathID(c, "id")
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.NoContent(c)
}
