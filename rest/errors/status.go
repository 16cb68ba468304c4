package errors

import (
	"errors"
	"net/http"
)

const (
	MsgUnauthorized = "Unauthorized"
	MsgBadRequest   = "Bad Request"
)

// StatusCode maps an error kind to the HTTP status surfaced to the client.
func StatusCode(err error) int {
	var (
		validationErr     *ValidationError
		authenticationErr *AuthenticationError
		notFoundErr       *NotFoundError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authenticationErr):
		return http.StatusUnauthorized
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
