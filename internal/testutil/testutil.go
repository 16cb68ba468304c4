package testutil

import (
	"go.uber.org/zap"

	"github.com/joblyhq/jobly-api/auth"
	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/log"
)

const (
	AdminUsername = "admin"
	UserUsername  = "u1"
)

// TestLogger returns a development logger writing to stderr.
func TestLogger() log.Logger {
	return log.NewZapLogger(zap.NewExample())
}

// CreateToken signs a token with the secret of the default config mock.
func CreateToken(username string, isAdmin bool) string {
	token, err := auth.NewTokenIssuer([]byte(config.TestSecretKey), 0).Issue(username, isAdmin)
	if err != nil {
		panic(err)
	}
	return token
}

func AdminToken() string {
	return CreateToken(AdminUsername, true)
}

func UserToken() string {
	return CreateToken(UserUsername, false)
}
