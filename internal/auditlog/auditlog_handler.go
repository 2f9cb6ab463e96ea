package auditlog

import (
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auditlog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	params, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	reference, err := query.OptionalID(c, "referencia")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), ListFilter{
		Table:     c.Query("tabela"),
		Reference: reference,
		Params:    params,
	})
	if err != nil {
		h.logger.Warn("list audit entries failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}

	response.List(c, entries, total)
}
