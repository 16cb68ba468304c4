package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/graphql"
	"github.com/joblyhq/jobly-api/log"
	"github.com/joblyhq/jobly-api/model"
	"github.com/joblyhq/jobly-api/rest"
	"github.com/joblyhq/jobly-api/types"
)

const DefaultBcryptCost = 12

type JoblyEndpointConfig struct {
	dbDriver   string
	dbURL      string
	dbOptions  db.Options
	secretKey  []byte
	tokenTTL   time.Duration
	bcryptCost int
	naming     config.NamingConvention
	logger     log.Logger
}

func (cfg JoblyEndpointConfig) SecretKey() []byte {
	return cfg.secretKey
}

func (cfg JoblyEndpointConfig) TokenTTL() time.Duration {
	return cfg.tokenTTL
}

func (cfg JoblyEndpointConfig) BcryptCost() int {
	return cfg.bcryptCost
}

func (cfg JoblyEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg JoblyEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *JoblyEndpointConfig) WithDbDriver(driver string) *JoblyEndpointConfig {
	cfg.dbDriver = driver
	return cfg
}

func (cfg *JoblyEndpointConfig) WithDbOptions(options db.Options) *JoblyEndpointConfig {
	cfg.dbOptions = options
	return cfg
}

func (cfg *JoblyEndpointConfig) WithSecretKey(secretKey string) *JoblyEndpointConfig {
	cfg.secretKey = []byte(secretKey)
	return cfg
}

func (cfg *JoblyEndpointConfig) WithTokenTTL(tokenTTL time.Duration) *JoblyEndpointConfig {
	cfg.tokenTTL = tokenTTL
	return cfg
}

func (cfg *JoblyEndpointConfig) WithBcryptCost(bcryptCost int) *JoblyEndpointConfig {
	cfg.bcryptCost = bcryptCost
	return cfg
}

func (cfg *JoblyEndpointConfig) WithNaming(naming config.NamingConvention) *JoblyEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg JoblyEndpointConfig) NewEndpoint() (*JoblyEndpoint, error) {
	dbClient, err := db.NewDb(cfg.dbDriver, cfg.dbURL, cfg.dbOptions)
	if err != nil {
		return nil, err
	}
	return cfg.newEndpointWithDb(dbClient), nil
}

func (cfg JoblyEndpointConfig) newEndpointWithDb(dbClient *db.Db) *JoblyEndpoint {
	stores := model.NewStores(dbClient, cfg)
	return &JoblyEndpoint{
		dbClient:        dbClient,
		graphQLRouteGen: graphql.NewRouteGenerator(stores, cfg.logger),
		restRouteGen:    rest.NewRouteGenerator(stores, cfg),
	}
}

type JoblyEndpoint struct {
	dbClient        *db.Db
	graphQLRouteGen *graphql.RouteGenerator
	restRouteGen    *rest.RouteGenerator
}

func NewEndpointConfig(dbURL string) (*JoblyEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), dbURL), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, dbURL string) *JoblyEndpointConfig {
	return &JoblyEndpointConfig{
		dbDriver:   db.DriverPQ,
		dbURL:      dbURL,
		dbOptions:  db.DefaultOptions(),
		bcryptCost: DefaultBcryptCost,
		naming:     config.NewDefaultNaming(),
		logger:     logger,
	}
}

// RoutesRest returns the REST routes under prefix. Path parameters are read from the httprouter context.
func (e *JoblyEndpoint) RoutesRest(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix, func(r *http.Request, name string) string {
		return httprouter.ParamsFromContext(r.Context()).ByName(name)
	})
}

func (e *JoblyEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

// Migrate creates the tables if they do not exist yet.
func (e *JoblyEndpoint) Migrate(ctx context.Context) error {
	_, err := e.dbClient.Execute(ctx, model.Schema)
	return err
}

func (e *JoblyEndpoint) Close() error {
	return e.dbClient.Close()
}
