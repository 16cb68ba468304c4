package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/graphql"
	"github.com/joblyhq/jobly-api/types"
)

const (
	getIndex  = 0
	postIndex = 1
)

const companiesQuery = `query {
  companies(minEmployees: 5) {
    handle
    numEmployees
  }
}`

const companyQuery = `query {
  company(handle: "c1") {
    name
    jobs {
      title
      equity
    }
  }
}`

type responseBody struct {
	Data   map[string]interface{}   `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

func createGraphQLRoutes(t *testing.T) (*db.SessionMock, []types.Route) {
	sessionMock := db.NewSessionMock()
	endpoint := createConfig().newEndpointWithDb(db.NewDbWithSession(sessionMock))
	routes, err := endpoint.RoutesGraphQL("/graphql")
	assert.NoError(t, err)
	assert.Len(t, routes, 2)
	return sessionMock, routes
}

func executePost(routes []types.Route, body graphql.RequestBody) (responseBody, int) {
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b))
	return serve(routes[postIndex], r)
}

func executeGet(routes []types.Route, query string) (responseBody, int) {
	r := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(query), nil)
	return serve(routes[getIndex], r)
}

func serve(route types.Route, r *http.Request) (responseBody, int) {
	w := httptest.NewRecorder()
	route.Handler.ServeHTTP(w, r)

	var resp responseBody
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp, w.Code
}

func TestJoblyEndpoint_GraphQLCompanies(t *testing.T) {
	session, routes := createGraphQLRoutes(t)
	session.On("Query",
		`SELECT handle, name, description, num_employees AS "numEmployees", logo_url AS "logoUrl" FROM companies `+
			`WHERE num_employees >= $1 ORDER BY name`,
		[]interface{}{5}).
		Return(rows(companyRow("c1")), nil)

	resp, code := executePost(routes, graphql.RequestBody{Query: companiesQuery})
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{
		"companies": []interface{}{
			map[string]interface{}{"handle": "c1", "numEmployees": float64(10)},
		},
	}, resp.Data)
	session.AssertExpectations(t)
}

func TestJoblyEndpoint_GraphQLCompanyWithJobs(t *testing.T) {
	session, routes := createGraphQLRoutes(t)
	session.On("Query", queryPrefix("SELECT handle"), []interface{}{"c1"}).
		Return(rows(companyRow("c1")), nil)
	session.On("Query", queryPrefix("SELECT id"), []interface{}{"c1"}).
		Return(rows(map[string]interface{}{
			"id": int64(1), "title": "J1", "salary": nil, "equity": "0.5", "companyHandle": "c1",
		}), nil)

	resp, code := executeGet(routes, companyQuery)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{
		"company": map[string]interface{}{
			"name": "C c1",
			"jobs": []interface{}{
				map[string]interface{}{"title": "J1", "equity": "0.5"},
			},
		},
	}, resp.Data)
}

func TestJoblyEndpoint_GraphQLMissingCompany(t *testing.T) {
	session, routes := createGraphQLRoutes(t)
	session.On("Query", queryPrefix("SELECT handle"), mock.Anything).Return(rows(), nil)

	resp, code := executeGet(routes, companyQuery)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "No company: c1", resp.Errors[0]["message"])
}

func TestJoblyEndpoint_GraphQLInvalidBody(t *testing.T) {
	_, routes := createGraphQLRoutes(t)

	r := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	routes[postIndex].Handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoblyEndpoint_GraphQLInvalidFilters(t *testing.T) {
	session, routes := createGraphQLRoutes(t)

	for _, query := range []string{
		`query { companies(minEmployees: -5) { handle } }`,
		`query { jobs(title: "") { title } }`,
	} {
		resp, code := executeGet(routes, query)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, resp.Errors, 1, query)
	}
	session.AssertNumberOfCalls(t, "Query", 0)
}
