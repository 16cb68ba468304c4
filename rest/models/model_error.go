package models

// ModelError is the body of every error response.
type ModelError struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error state.
type ErrorDetail struct {
	// A human readable description of the error state
	Message string `json:"message"`

	// The HTTP status code of the response
	Status int `json:"status"`
}
