package rest

import (
	"net/http"

	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/model"
	restEndpointV1 "github.com/joblyhq/jobly-api/rest/endpoint/v1"
	"github.com/joblyhq/jobly-api/types"
)

type RouteGenerator struct {
	stores *model.Stores
	config config.Config
}

func NewRouteGenerator(
	stores *model.Stores,
	cfg config.Config,
) *RouteGenerator {
	return &RouteGenerator{
		stores: stores,
		config: cfg,
	}
}

// Routes returns the v1 routes under prefix followed by an index of them at the prefix root.
func (g *RouteGenerator) Routes(prefix string, params func(*http.Request, string) string) []types.Route {
	routes := restEndpointV1.Routes(prefix, g.config, g.stores, params)
	return append(routes, indexRoute(prefix, routes))
}
