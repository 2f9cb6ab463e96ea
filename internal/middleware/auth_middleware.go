package middleware

import (
	"errors"
	"strings"

	autherrors "go-hr-admin/internal/auth/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ContextEmployeeID is the gin key holding the authenticated employee id (int64).
const ContextEmployeeID = "employee_id"

// TokenParser resolves an access token to the employee it was issued for.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		employeeID, err := parser.ParseToken(tokenString)
		if err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				appErr = autherrors.ErrInvalidToken
			}
			abortWith(c, appErr)
			return
		}

		c.Set(ContextEmployeeID, employeeID)
		c.Request = c.Request.WithContext(contextutil.WithEmployeeID(c.Request.Context(), employeeID))

		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Message)
	c.Abort()
}
