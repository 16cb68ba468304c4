package rest

import (
	"net/http"

	restEndpointV1 "github.com/joblyhq/jobly-api/rest/endpoint/v1"
	"github.com/joblyhq/jobly-api/types"
)

type routeEntry struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}

// jsonResult provides a basic root object in order to avoid using a scalar at root level.
type jsonResult struct {
	Routes []routeEntry `json:"routes"`
}

func indexRoute(prefix string, routes []types.Route) types.Route {
	entries := make([]routeEntry, 0, len(routes))
	for _, route := range routes {
		entries = append(entries, routeEntry{Method: route.Method, Pattern: route.Pattern})
	}

	pattern := prefix
	if pattern == "" {
		pattern = "/"
	}
	return types.Route{
		Method:  http.MethodGet,
		Pattern: pattern,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			restEndpointV1.RespondJSONObjectWithCode(w, http.StatusOK, jsonResult{Routes: entries})
		}),
	}
}
