package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrMalformedParam = errors.New("malformed query parameter")

// ListParams carries the filters every searchable resource accepts. Zero ID,
// nil Limit and nil Search mean "unset".
type ListParams struct {
	ID     int64
	Limit  *int
	Page   int
	Search *string
}

// CurrentPage is 1-based and defaults to 1.
func (p ListParams) CurrentPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// Offset is only meaningful when a limit is set and the page is not the first.
func (p ListParams) Offset() (int, bool) {
	if p.Limit == nil || p.CurrentPage() == 1 {
		return 0, false
	}
	return (p.CurrentPage() - 1) * *p.Limit, true
}

// ParseListParams reads id (query or path), limit, page and search.
func ParseListParams(c *gin.Context) (ListParams, error) {
	var p ListParams

	rawID := c.Query("id")
	if rawID == "" {
		rawID = c.Param("id")
	}
	id, err := parseID(rawID)
	if err != nil {
		return p, err
	}
	p.ID = id

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return p, ErrMalformedParam
		}
		if limit > 0 {
			p.Limit = &limit
		}
	}

	p.Page = 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, ErrMalformedParam
		}
		p.Page = page
	}

	p.Search = OptionalString(c, "search")
	return p, nil
}

// OptionalString treats missing and empty parameters alike.
func OptionalString(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// OptionalID parses a numeric reference filter; missing or empty is zero.
func OptionalID(c *gin.Context, key string) (int64, error) {
	return parseID(c.Query(key))
}

// PathID parses a path parameter that must be a positive id.
func PathID(c *gin.Context, key string) (int64, error) {
	id, err := parseID(c.Param(key))
	if err != nil || id == 0 {
		return 0, ErrMalformedParam
	}
	return id, nil
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrMalformedParam
	}
	return id, nil
}
