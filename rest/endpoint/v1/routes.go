package endpoint

import (
	"net/http"

	"github.com/joblyhq/jobly-api/auth"
	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/log"
	"github.com/joblyhq/jobly-api/model"
	e "github.com/joblyhq/jobly-api/rest/errors"
	"github.com/joblyhq/jobly-api/types"
)

const maxBodyBytes = 1 << 20

// Route describes how to route an endpoint
type routeList struct {
	stores     *model.Stores
	issuer     *auth.TokenIssuer
	authorizer *auth.Authorizer
	logger     log.Logger
	params     func(*http.Request, string) string
}

type guard func(http.Handler) http.Handler

// Routes returns a slice of all the endpoint routes
func Routes(prefix string, cfg config.Config, stores *model.Stores, params func(*http.Request, string) string) []types.Route {
	rl := routeList{
		stores: stores,
		issuer: auth.NewTokenIssuer(cfg.SecretKey(), cfg.TokenTTL()),
		logger: cfg.Logger(),
		params: params,
	}
	rl.authorizer = auth.NewAuthorizer(auth.NewTokenVerifier(cfg.SecretKey()), rl.respondWithError, params)

	anonymous := func(next http.Handler) http.Handler { return next }
	admin := rl.authorizer.EnsureAdmin
	adminOrSelf := func(next http.Handler) http.Handler {
		return rl.authorizer.EnsureAdminOrSelf("username", next)
	}

	return []types.Route{
		rl.route(http.MethodPost, prefix+"/auth/token", anonymous, rl.Token),
		rl.route(http.MethodPost, prefix+"/auth/register", anonymous, rl.Register),

		rl.route(http.MethodPost, prefix+"/companies", admin, rl.AddCompany),
		rl.route(http.MethodGet, prefix+"/companies", anonymous, rl.GetCompanies),
		rl.route(http.MethodGet, prefix+"/companies/:handle", anonymous, rl.GetCompany),
		rl.route(http.MethodPatch, prefix+"/companies/:handle", admin, rl.UpdateCompany),
		rl.route(http.MethodDelete, prefix+"/companies/:handle", admin, rl.DeleteCompany),

		rl.route(http.MethodPost, prefix+"/jobs", admin, rl.AddJob),
		rl.route(http.MethodGet, prefix+"/jobs", anonymous, rl.GetJobs),
		rl.route(http.MethodGet, prefix+"/jobs/:id", anonymous, rl.GetJob),
		rl.route(http.MethodPatch, prefix+"/jobs/:id", admin, rl.UpdateJob),
		rl.route(http.MethodDelete, prefix+"/jobs/:id", admin, rl.DeleteJob),

		rl.route(http.MethodPost, prefix+"/users", admin, rl.AddUser),
		rl.route(http.MethodGet, prefix+"/users", admin, rl.GetUsers),
		rl.route(http.MethodGet, prefix+"/users/:username", adminOrSelf, rl.GetUser),
		rl.route(http.MethodPatch, prefix+"/users/:username", adminOrSelf, rl.UpdateUser),
		rl.route(http.MethodDelete, prefix+"/users/:username", adminOrSelf, rl.DeleteUser),
	}
}

func (s *routeList) route(method string, pattern string, check guard, handler http.HandlerFunc) types.Route {
	return types.Route{
		Method:  method,
		Pattern: pattern,
		Handler: s.authorizer.Authenticate(check(handler)),
	}
}

func (s *routeList) respondWithError(w http.ResponseWriter, err error) {
	if code := e.StatusCode(err); code == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	RespondWithKnownError(w, err)
}
