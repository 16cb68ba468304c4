package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"

	"github.com/joblyhq/jobly-api/rest/models"
	"github.com/joblyhq/jobly-api/types"
)

const Prefix = "/"

// Request describes a call against a single route. Token is sent as a bearer token when set.
type Request struct {
	Token string
	Query string
	Body  string
}

func ExecuteGet(routes []types.Route, req Request, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	return execute(http.MethodGet, routes, req, routeFormat, responsePtr, values...)
}

func ExecutePost(routes []types.Route, req Request, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	return execute(http.MethodPost, routes, req, routeFormat, responsePtr, values...)
}

func ExecutePatch(routes []types.Route, req Request, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	return execute(http.MethodPatch, routes, req, routeFormat, responsePtr, values...)
}

func ExecuteDelete(routes []types.Route, req Request, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	return execute(http.MethodDelete, routes, req, routeFormat, responsePtr, values...)
}

func execute(
	method string,
	routes []types.Route,
	req Request,
	routeFormat string,
	responsePtr interface{},
	values ...interface{},
) int {
	rv := reflect.ValueOf(responsePtr)
	if responsePtr != nil && rv.Kind() != reflect.Ptr {
		panic("Provided value should be a pointer or nil")
	}

	targetPath := path.Join(Prefix, fmt.Sprintf(routeFormat, values...))
	if req.Query != "" {
		targetPath += "?" + req.Query
	}
	var body io.Reader = nil
	if req.Body != "" {
		body = bytes.NewBufferString(req.Body)
	}

	r := httptest.NewRequest(method, targetPath, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}

	w := httptest.NewRecorder()
	route := lookupRoute(routes, method, routeFormat)

	// Use default router for params to be populated
	router := httprouter.New()
	router.Handler(method, route.Pattern, route.Handler)
	router.ServeHTTP(w, r)

	if w.Code < http.StatusOK || w.Code > http.StatusIMUsed {
		// Not in the 2xx range
		if responsePtr == nil {
			return w.Code
		}
		_, ok := responsePtr.(*models.ModelError)
		if !ok {
			panic(fmt.Sprintf("unexpected http error %d: %s", w.Code, w.Body))
		}
	}

	if responsePtr != nil && w.Code != http.StatusNoContent {
		bodyString := w.Body.String()
		err := json.NewDecoder(bytes.NewBufferString(bodyString)).Decode(responsePtr)
		Expect(err).ToNot(HaveOccurred(),
			fmt.Sprintf("Error decoding response with code %d and body: %s", w.Code, bodyString))
	}

	return w.Code
}

func lookupRoute(routes []types.Route, method, format string) types.Route {
	// Word tokens for parameters
	regexStr := strings.Replace(format, `%s`, `:\w+`, -1)
	regexStr = `^` + regexStr + `$`

	re := regexp.MustCompile(regexStr)
	for _, route := range routes {
		if re.MatchString(route.Pattern) && route.Method == method {
			return route
		}
	}

	panic("Route not found")
}
