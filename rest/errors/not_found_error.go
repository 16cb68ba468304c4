package errors

// NotFoundError is raised by the model layer when the addressed entity does not exist.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

func NewNotFoundError(text string) error {
	return &NotFoundError{text}
}
