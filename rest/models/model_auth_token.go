package models

// Credentials contains the username and password to exchange for a token
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse contains the token to be used for all future requests
type TokenResponse struct {
	Token string `json:"token"`
}
