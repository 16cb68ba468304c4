package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/joblyhq/jobly-api/log"
	"github.com/joblyhq/jobly-api/model"
	"github.com/joblyhq/jobly-api/types"
)

type executeQueryFunc func(query string, ctx context.Context) *graphql.Result

type RouteGenerator struct {
	logger    log.Logger
	schemaGen *SchemaGenerator
}

type RequestBody struct {
	Query string `json:"query"`
}

func NewRouteGenerator(stores *model.Stores, logger log.Logger) *RouteGenerator {
	return &RouteGenerator{
		logger:    logger,
		schemaGen: NewSchemaGenerator(stores, logger),
	}
}

func (rg *RouteGenerator) Routes(pattern string) ([]types.Route, error) {
	schema, err := rg.schemaGen.BuildSchema()
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %s", err)
	}

	return routesForSchema(pattern, func(query string, ctx context.Context) *graphql.Result {
		return rg.executeQuery(query, ctx, schema)
	}), nil
}

func routesForSchema(pattern string, execute executeQueryFunc) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result := execute(r.URL.Query().Get("query"), r.Context())
				writeResult(w, result)
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", http.StatusBadRequest)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", http.StatusBadRequest)
					return
				}

				result := execute(body.Query, r.Context())
				writeResult(w, result)
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), http.StatusInternalServerError)
	}
}

func (rg *RouteGenerator) executeQuery(query string, ctx context.Context, schema graphql.Schema) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Error("unexpected errors processing graphql query", "errors", result.Errors)
	}
	return result
}
