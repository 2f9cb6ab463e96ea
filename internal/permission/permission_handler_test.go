package permission_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-admin/internal/permission"
	permissionerrors "go-hr-admin/internal/permission/errors"
	"go-hr-admin/internal/shared/optioncache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermissionService struct {
	SearchFn     func(ctx context.Context, criteria permission.SearchCriteria) ([]permission.Permission, int64, error)
	GetFn        func(ctx context.Context, id int64) (*permission.Permission, error)
	SaveFn       func(ctx context.Context, in permission.PermissionInput) (*permission.Permission, error)
	SoftDeleteFn func(ctx context.Context, id int64) error
	OptionsFn    func(ctx context.Context) ([]optioncache.Option, error)
}

func (f *fakePermissionService) Search(ctx context.Context, criteria permission.SearchCriteria) ([]permission.Permission, int64, error) {
	return f.SearchFn(ctx, criteria)
}
func (f *fakePermissionService) Get(ctx context.Context, id int64) (*permission.Permission, error) {
	return f.GetFn(ctx, id)
}
func (f *fakePermissionService) Save(ctx context.Context, in permission.PermissionInput) (*permission.Permission, error) {
	return f.SaveFn(ctx, in)
}
func (f *fakePermissionService) SoftDelete(ctx context.Context, id int64) error {
	return f.SoftDeleteFn(ctx, id)
}
func (f *fakePermissionService) Options(ctx context.Context) ([]optioncache.Option, error) {
	return f.OptionsFn(ctx)
}

func setupRouter(svc permission.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := permission.NewHandler(svc)
	r.GET("/permissoes", h.Select)
	r.GET("/permissoes/options", h.Options)
	r.GET("/permissoes/:id", h.Select)
	r.POST("/permissoes", h.Save)
	r.POST("/permissoes/:id", h.Save)
	r.DELETE("/permissoes/:id", h.SoftDelete)
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
	t.Run("list", func(t *testing.T) {
		svc := &fakePermissionService{SearchFn: func(_ context.Context, c permission.SearchCriteria) ([]permission.Permission, int64, error) {
			require.NotNil(t, c.Limit)
			assert.Equal(t, 10, *c.Limit)
			assert.Equal(t, 2, c.Page)
			require.NotNil(t, c.Search)
			assert.Equal(t, "func", *c.Search)
			return []permission.Permission{{ID: 1, Description: "funcionarios"}}, 11, nil
		}}

		w := serve(setupRouter(svc), http.MethodGet, "/permissoes?limit=10&page=2&search=func", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 11, body["total"])
		assert.Len(t, body["results"], 1)
	})

	t.Run("single by path id", func(t *testing.T) {
		svc := &fakePermissionService{GetFn: func(_ context.Context, id int64) (*permission.Permission, error) {
			assert.EqualValues(t, 5, id)
			return &permission.Permission{ID: 5, Description: "cargos"}, nil
		}}

		w := serve(setupRouter(svc), http.MethodGet, "/permissoes/5", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"permissao":"cargos","desativado":0}`, w.Body.String())
	})

	t.Run("malformed filter", func(t *testing.T) {
		w := serve(setupRouter(&fakePermissionService{}), http.MethodGet, "/permissoes?limit=abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Bad request", w.Body.String())
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &fakePermissionService{SearchFn: func(context.Context, permission.SearchCriteria) ([]permission.Permission, int64, error) {
			return nil, 0, errors.New("connection refused")
		}}

		w := serve(setupRouter(svc), http.MethodGet, "/permissoes", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Bad request", w.Body.String())
	})
}

func TestHandler_Save(t *testing.T) {
	t.Run("update via path id", func(t *testing.T) {
		svc := &fakePermissionService{SaveFn: func(_ context.Context, in permission.PermissionInput) (*permission.Permission, error) {
			require.NotNil(t, in.ID)
			assert.EqualValues(t, 7, *in.ID)
			return &permission.Permission{ID: 7, Description: *in.Description}, nil
		}}

		w := serve(setupRouter(svc), http.MethodPost, "/permissoes/7", `{"permissao":{"permissao":"logs"}}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"permissao":"logs"`)
	})

	t.Run("no content", func(t *testing.T) {
		svc := &fakePermissionService{SaveFn: func(context.Context, permission.PermissionInput) (*permission.Permission, error) {
			return nil, nil
		}}

		w := serve(setupRouter(svc), http.MethodPost, "/permissoes/7", `{"permissao":{}}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("validation message as plain text", func(t *testing.T) {
		svc := &fakePermissionService{SaveFn: func(context.Context, permission.PermissionInput) (*permission.Permission, error) {
			return nil, permissionerrors.ErrInvalidDescription
		}}

		w := serve(setupRouter(svc), http.MethodPost, "/permissoes", `{"permissao":{"permissao":""}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Descrição inválida!", w.Body.String())
	})

	t.Run("missing wrapper", func(t *testing.T) {
		w := serve(setupRouter(&fakePermissionService{}), http.MethodPost, "/permissoes", `{"descricao":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid payload", w.Body.String())
	})
}

func TestHandler_SoftDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePermissionService{SoftDeleteFn: func(_ context.Context, id int64) error {
			assert.EqualValues(t, 3, id)
			return nil
		}}

		w := serve(setupRouter(svc), http.MethodDelete, "/permissoes/3", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("already deleted answers once", func(t *testing.T) {
		svc := &fakePermissionService{SoftDeleteFn: func(context.Context, int64) error {
			return permissionerrors.ErrDeleteFailed
		}}

		w := serve(setupRouter(svc), http.MethodDelete, "/permissoes/3", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Não foi possível excluir permissão!", w.Body.String())
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := serve(setupRouter(&fakePermissionService{}), http.MethodDelete, "/permissoes/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Id is invalid", w.Body.String())
	})
}

func TestHandler_Options(t *testing.T) {
	svc := &fakePermissionService{OptionsFn: func(context.Context) ([]optioncache.Option, error) {
		return []optioncache.Option{{ID: 1, Description: "admin"}}, nil
	}}

	w := serve(setupRouter(svc), http.MethodGet, "/permissoes/options", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"descricao":"admin"}]`, w.Body.String())
}
