package cmd

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	restEndpointV1 "github.com/joblyhq/jobly-api/rest/endpoint/v1"
	e "github.com/joblyhq/jobly-api/rest/errors"
)

type rateLimitHandler struct {
	handler http.Handler
	limiter *rate.Limiter
}

// newRateLimitHandler rejects requests beyond limit per second, allowing bursts up to burst.
func newRateLimitHandler(handler http.Handler, limit float64, burst int) http.Handler {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitHandler{
		handler: handler,
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
	}
}

func (h *rateLimitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		restEndpointV1.RespondWithError(w, errors.New(http.StatusText(http.StatusTooManyRequests)), http.StatusTooManyRequests)
		return
	}
	h.handler.ServeHTTP(w, r)
}

func respondNotFound(w http.ResponseWriter) {
	restEndpointV1.RespondWithKnownError(w, e.NewNotFoundError(http.StatusText(http.StatusNotFound)))
}
