package query_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-admin/internal/shared/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseListParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := query.ParseListParams(newContext("/permissoes"))

		assert.NoError(t, err)
		assert.Zero(t, p.ID)
		assert.Nil(t, p.Limit)
		assert.Nil(t, p.Search)
		assert.Equal(t, 1, p.CurrentPage())
	})

	t.Run("all values", func(t *testing.T) {
		p, err := query.ParseListParams(newContext("/permissoes?id=3&limit=10&page=2&search=adm"))

		assert.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)
		assert.Equal(t, 10, *p.Limit)
		assert.Equal(t, "adm", *p.Search)
		offset, ok := p.Offset()
		assert.True(t, ok)
		assert.Equal(t, 10, offset)
	})

	t.Run("path id", func(t *testing.T) {
		c := newContext("/permissoes/9")
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		p, err := query.ParseListParams(c)

		assert.NoError(t, err)
		assert.Equal(t, int64(9), p.ID)
	})

	t.Run("empty search is unset", func(t *testing.T) {
		p, err := query.ParseListParams(newContext("/permissoes?search="))

		assert.NoError(t, err)
		assert.Nil(t, p.Search)
	})

	for _, target := range []string{"/x?limit=abc", "/x?page=two", "/x?id=1.5", "/x?limit=-1"} {
		t.Run("malformed "+target, func(t *testing.T) {
			_, err := query.ParseListParams(newContext(target))
			assert.ErrorIs(t, err, query.ErrMalformedParam)
		})
	}
}

func TestListParams_Offset(t *testing.T) {
	limit := 10

	_, ok := query.ListParams{Page: 3}.Offset()
	assert.False(t, ok, "no limit means no offset")

	_, ok = query.ListParams{Limit: &limit, Page: 1}.Offset()
	assert.False(t, ok, "first page has no offset")

	offset, ok := query.ListParams{Limit: &limit, Page: 3}.Offset()
	assert.True(t, ok)
	assert.Equal(t, 20, offset)

	_, ok = query.ListParams{Limit: &limit, Page: 0}.Offset()
	assert.False(t, ok, "page below 1 falls back to the first page")
}
