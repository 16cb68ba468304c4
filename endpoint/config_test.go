package endpoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/internal/testutil"
)

func TestJoblyEndpointConfigDefaults(t *testing.T) {
	cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "postgres://localhost/jobly")
	assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost())
	assert.Equal(t, time.Duration(0), cfg.TokenTTL())
	assert.Equal(t, "num_employees", cfg.Naming().ToColumn("numEmployees"))
	assert.Equal(t, db.DriverPQ, cfg.dbDriver)
	assert.Equal(t, db.DefaultOptions(), cfg.dbOptions)
}

func TestJoblyEndpointConfigBuilder(t *testing.T) {
	cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "postgres://localhost/jobly").
		WithSecretKey("s3cret").
		WithTokenTTL(time.Hour).
		WithBcryptCost(4).
		WithDbDriver(db.DriverPgx)

	assert.Equal(t, []byte("s3cret"), cfg.SecretKey())
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, 4, cfg.BcryptCost())
	assert.Equal(t, db.DriverPgx, cfg.dbDriver)
}

func TestJoblyEndpointUnknownDriver(t *testing.T) {
	cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "postgres://localhost/jobly").WithDbDriver("sqlite3")
	_, err := cfg.NewEndpoint()
	assert.Error(t, err)
}
