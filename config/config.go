package config

import (
	"time"

	"github.com/joblyhq/jobly-api/log"
)

// Config is the immutable process configuration handed to each component at start.
type Config interface {
	// SecretKey signs and verifies bearer tokens.
	SecretKey() []byte
	// TokenTTL is the lifetime of issued tokens, zero means tokens do not expire.
	TokenTTL() time.Duration
	BcryptCost() int
	Naming() NamingConvention
	Logger() log.Logger
}
