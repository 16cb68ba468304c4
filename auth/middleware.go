package auth

import (
	"net/http"
	"strings"
)

const bearerScheme = "Bearer"

// ErrorResponder writes err to the client.
type ErrorResponder func(w http.ResponseWriter, err error)

// Authorizer installs the principal of each request and guards handlers with authorization checks.
type Authorizer struct {
	verifier *TokenVerifier
	respond  ErrorResponder
	params   func(*http.Request, string) string
}

// NewAuthorizer creates an Authorizer. params resolves a named path parameter of a request.
func NewAuthorizer(verifier *TokenVerifier, respond ErrorResponder, params func(*http.Request, string) string) *Authorizer {
	return &Authorizer{verifier: verifier, respond: respond, params: params}
}

// Authenticate stores the principal of a valid bearer token in the request context. Requests without a
// valid token continue anonymously.
func (a *Authorizer) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r.Header.Get("Authorization")); raw != "" {
			if principal, ok := a.verifier.Verify(raw); ok {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authorizer) EnsureLoggedIn(next http.Handler) http.Handler {
	return a.guard(next, func(r *http.Request) error {
		return RequireAuthenticated(PrincipalFromContext(r.Context()))
	})
}

func (a *Authorizer) EnsureAdmin(next http.Handler) http.Handler {
	return a.guard(next, func(r *http.Request) error {
		return RequireAdmin(PrincipalFromContext(r.Context()))
	})
}

// EnsureAdminOrSelf lets through admins and the user named by the path parameter param.
func (a *Authorizer) EnsureAdminOrSelf(param string, next http.Handler) http.Handler {
	return a.guard(next, func(r *http.Request) error {
		return RequireAdminOrSelf(PrincipalFromContext(r.Context()), a.params(r, param))
	})
}

func (a *Authorizer) guard(next http.Handler, check func(*http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := check(r); err != nil {
			a.respond(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
