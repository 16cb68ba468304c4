package errors

// ValidationError reports malformed input: an empty update, an out of range filter, a request body
// that failed validation, or a principal in the context that carries no username.
type ValidationError struct {
	msg     string
	details []string
	cause   error
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Details holds the individual validation messages, if any.
func (e *ValidationError) Details() []string {
	return e.details
}

func NewValidationError(text string, details ...string) error {
	return &ValidationError{msg: text, details: details}
}

// Unwrap returns the error the validation failure was derived from, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// WrapValidationError reports cause to the client as a ValidationError with text as its message.
func WrapValidationError(text string, cause error) error {
	return &ValidationError{msg: text, cause: cause}
}
