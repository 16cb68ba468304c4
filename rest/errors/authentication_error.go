package errors

// AuthenticationError is returned when a request is not authenticated or when the authenticated
// principal is not allowed to perform the operation.
type AuthenticationError struct {
	msg string
}

func (e *AuthenticationError) Error() string {
	return e.msg
}

func NewAuthenticationError(text string) error {
	return &AuthenticationError{text}
}
