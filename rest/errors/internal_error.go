package errors

// InternalError wraps failures that are not the client's fault, such as an unreachable database.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string {
	return e.msg
}

func NewInternalError(text string) error {
	return &InternalError{text}
}
