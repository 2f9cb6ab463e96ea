package branch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/branch"
	brancherrors "go-hr-admin/internal/branch/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchService struct {
	SearchFn func(ctx context.Context, criteria branch.SearchCriteria) ([]branch.Branch, int64, error)
	GetFn    func(ctx context.Context, id int64) (*branch.Branch, error)
	SaveFn   func(ctx context.Context, in branch.BranchInput) (*branch.Branch, error)
	DeleteFn func(ctx context.Context, id int64) error
}

func (f *fakeBranchService) Search(ctx context.Context, criteria branch.SearchCriteria) ([]branch.Branch, int64, error) {
	return f.SearchFn(ctx, criteria)
}
func (f *fakeBranchService) Get(ctx context.Context, id int64) (*branch.Branch, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeBranchService) Save(ctx context.Context, in branch.BranchInput) (*branch.Branch, error) {
	return f.SaveFn(ctx, in)
}
func (f *fakeBranchService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}

type fakeAssignmentService struct {
	SearchFn func(ctx context.Context, criteria branch.AssignmentCriteria) ([]branch.Assignment, int64, error)
	GetFn    func(ctx context.Context, id int64) (*branch.Assignment, error)
	SaveFn   func(ctx context.Context, in branch.AssignmentInput) (*branch.Assignment, error)
	DeleteFn func(ctx context.Context, id int64) error
	RemoveFn func(ctx context.Context, employeeID int64) (int64, error)
}

func (f *fakeAssignmentService) Search(ctx context.Context, criteria branch.AssignmentCriteria) ([]branch.Assignment, int64, error) {
	return f.SearchFn(ctx, criteria)
}
func (f *fakeAssignmentService) Get(ctx context.Context, id int64) (*branch.Assignment, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeAssignmentService) Save(ctx context.Context, in branch.AssignmentInput) (*branch.Assignment, error) {
	return f.SaveFn(ctx, in)
}
func (f *fakeAssignmentService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeAssignmentService) RemoveEmployeeAssignments(ctx context.Context, employeeID int64) (int64, error) {
	return f.RemoveFn(ctx, employeeID)
}

func setupRouter(svc branch.Service, assignments branch.AssignmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := branch.NewHandler(svc, assignments)
	r.GET("/filiais", h.Select)
	r.GET("/filiais/funcionarios", h.SelectAssignments)
	r.GET("/filiais/:id", h.Select)
	r.POST("/filiais", h.Save)
	r.DELETE("/filiais/:id", h.Delete)
	r.POST("/filiais-funcionarios", h.SaveAssignment)
	r.POST("/filiais-funcionarios/:id", h.SaveAssignment)
	r.DELETE("/filiais-funcionarios", h.DeleteAssignment)
	r.DELETE("/filiais-funcionarios/:id", h.DeleteAssignment)
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Select(t *testing.T) {
	svc := &fakeBranchService{GetFn: func(_ context.Context, id int64) (*branch.Branch, error) {
		assert.EqualValues(t, 2, id)
		return &branch.Branch{ID: 2, Name: "Centro"}, nil
	}}

	w := serve(setupRouter(svc, &fakeAssignmentService{}), http.MethodGet, "/filiais/2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"nome":"Centro"}`, w.Body.String())
}

func TestHandler_SelectAssignments(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		assignments := &fakeAssignmentService{SearchFn: func(_ context.Context, c branch.AssignmentCriteria) ([]branch.Assignment, int64, error) {
			assert.EqualValues(t, 3, c.BranchID)
			assert.EqualValues(t, 5, c.RoleID)
			assert.Zero(t, c.EmployeeID)
			return []branch.Assignment{{
				ID: 1, EmployeeID: 9, RoleID: 5, BranchID: 3,
				Employee: &auditlog.Actor{ID: 9, Name: "Ana"},
			}}, 1, nil
		}}

		w := serve(setupRouter(&fakeBranchService{}, assignments), http.MethodGet, "/filiais/funcionarios?filial=3&cargo=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"funcionario_filial":{"id":9,"nome":"Ana"`)
	})

	t.Run("malformed reference", func(t *testing.T) {
		w := serve(setupRouter(&fakeBranchService{}, &fakeAssignmentService{}), http.MethodGet, "/filiais/funcionarios?filial=abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Bad request", w.Body.String())
	})
}

func TestHandler_SaveAssignment(t *testing.T) {
	assignments := &fakeAssignmentService{SaveFn: func(_ context.Context, in branch.AssignmentInput) (*branch.Assignment, error) {
		require.NotNil(t, in.EmployeeID)
		assert.EqualValues(t, 9, *in.EmployeeID)
		return nil, brancherrors.ErrUnknownEmployee
	}}

	w := serve(setupRouter(&fakeBranchService{}, assignments), http.MethodPost, "/filiais-funcionarios",
		`{"filial_funcionario":{"funcionario":9,"cargo":1,"filial":1}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Funcionário inválido!", w.Body.String())
}

func TestHandler_DeleteAssignment(t *testing.T) {
	var deleted []int64
	assignments := &fakeAssignmentService{DeleteFn: func(_ context.Context, id int64) error {
		deleted = append(deleted, id)
		return nil
	}}
	r := setupRouter(&fakeBranchService{}, assignments)

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/filiais-funcionarios?id=4", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/filiais-funcionarios/5", "").Code)
	assert.Equal(t, []int64{4, 5}, deleted)

	w := serve(r, http.MethodDelete, "/filiais-funcionarios", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Id is invalid", w.Body.String())
}
