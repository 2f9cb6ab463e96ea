package middleware

import (
	"go-hr-admin/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger stores a request-scoped logger tagged with the request id and,
// once authenticated, the employee id. It must run after RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fields := []zap.Field{zap.String("request_id", contextutil.GetRequestID(ctx))}
		if id := contextutil.GetEmployeeID(ctx); id != nil {
			fields = append(fields, zap.Int64("employee_id", *id))
		}

		ctx = contextutil.WithLogger(ctx, logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
