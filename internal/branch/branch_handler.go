package branch

import (
	"net/http"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/query"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service     Service
	assignments AssignmentService
	logger      *zap.Logger
}

func NewHandler(service Service, assignments AssignmentService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("branch.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.handler")
	}
	return &Handler{service: service, assignments: assignments, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("branch request failed",
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
	ctx := c.Request.Context()

	if params.ID != 0 {
		b, err := h.service.Get(ctx, params.ID)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
			return
		}
		response.Success(c, http.StatusOK, b)
		return
	}

	results, total, err := h.service.Search(ctx, SearchCriteria{
		ListParams: params,
		Name:       query.OptionalString(c, "nome"),
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
		h.logger.Warn("http save branch bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidPayload)
		return
	}

	if raw := c.Param("id"); raw != "" {
		id, err := query.PathID(c, "id")
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("Id"))
			return
		}
		req.Branch.ID = &id
	}

	saved, err := h.service.Save(c.Request.Context(), *req.Branch)
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

// SelectAssignments lists the employees of a branch, or one assignment by id.
func (h *Handler) SelectAssignments(c *gin.Context) {
	params, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	branchID, errBranch := query.OptionalID(c, "filial")
	employeeID, errEmployee := query.OptionalID(c, "funcionario")
	roleID, errRole := query.OptionalID(c, "cargo")
	if errBranch != nil || errEmployee != nil || errRole != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	criteria := AssignmentCriteria{
		ListParams: params,
		BranchID:   branchID,
		EmployeeID: employeeID,
		RoleID:     roleID,
	}
	ctx := c.Request.Context()

	if params.ID != 0 {
		a, err := h.assignments.Get(ctx, params.ID)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
			return
		}
		response.Success(c, http.StatusOK, a)
		return
	}

	results, total, err := h.assignments.Search(ctx, criteria)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.MessageBadRequest)
		return
	}
	response.List(c, results, total)
}

func (h *Handler) SaveAssignment(c *gin.Context) {
	var req SaveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save branch assignment bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidPayload)
		return
	}

	if raw := c.Param("id"); raw != "" {
		id, err := query.PathID(c, "id")
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("Id"))
			return
		}
		req.Assignment.ID = &id
	}

	saved, err := h.assignments.Save(c.Request.Context(), *req.Assignment)
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

// DeleteAssignment takes the id from the path or the id query parameter.
func (h *Handler) DeleteAssignment(c *gin.Context) {
	params, err := query.ParseListParams(c)
	if err != nil || params.ID == 0 {
		h.writeServiceError(c, apperror.InvalidField("Id"))
		return
	}

	if err := h.assignments.Delete(c.Request.Context(), params.ID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.NoContent(c)
}
