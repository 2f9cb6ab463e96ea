package apperror

import (
	"fmt"
	"net/http"
)

const MessageBadRequest = "Bad request"

var (
	ErrBadRequest = Validation(MessageBadRequest)

	ErrUnauthorized = New(
		KindUnauthorized,
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		KindUnauthorized,
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInvalidPayload = Validation("Invalid payload")
)

func RequiredField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is invalid", field))
}
