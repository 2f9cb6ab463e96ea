package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEnvelope is the body of every list endpoint; Total counts the filtered
// rows before pagination.
type ListEnvelope struct {
	Results any   `json:"results"`
	Total   int64 `json:"total"`
}

func List(c *gin.Context, results any, total int64) {
	c.JSON(http.StatusOK, ListEnvelope{
		Results: results,
		Total:   total,
	})
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error answers with a plain-text body; clients display the message as is.
func Error(c *gin.Context, status int, message string) {
	c.String(status, message)
}
