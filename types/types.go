// types package contains the public API types
// that are shared between both REST and GraphQL
package types

import "net/http"

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}

// Deleted is the response for a successful removal.
type Deleted struct {
	Deleted string `json:"deleted"`
}
