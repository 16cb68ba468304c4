package auth

import (
	e "github.com/joblyhq/jobly-api/rest/errors"
)

// RequireAuthenticated passes when a principal with a username is present.
func RequireAuthenticated(principal *Principal) error {
	if principal == nil || principal.Username == "" {
		return e.NewAuthenticationError(e.MsgUnauthorized)
	}
	return nil
}

// RequireAdmin passes when the principal is an admin. A principal without a username is rejected as a
// bad request.
func RequireAdmin(principal *Principal) error {
	if principal == nil {
		return e.NewAuthenticationError(e.MsgUnauthorized)
	}
	if principal.Username == "" {
		return e.NewValidationError(e.MsgBadRequest)
	}
	if !principal.IsAdmin {
		return e.NewAuthenticationError(e.MsgUnauthorized)
	}
	return nil
}

// RequireAdminOrSelf passes when the principal is an admin or is the user named username.
func RequireAdminOrSelf(principal *Principal, username string) error {
	if principal == nil {
		return e.NewAuthenticationError(e.MsgUnauthorized)
	}
	if principal.Username == "" {
		return e.NewValidationError(e.MsgBadRequest)
	}
	if !principal.IsAdmin && principal.Username != username {
		return e.NewAuthenticationError(e.MsgUnauthorized)
	}
	return nil
}
