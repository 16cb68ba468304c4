package log

import (
	"net/http"
	"time"

	"go.uber.org/atomic"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type loggingHandler struct {
	handler  http.Handler
	logger   Logger
	requests *atomic.Uint64
}

// NewLoggingHandler logs every request served by handler once the response has been written.
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{
		handler:  handler,
		logger:   logger,
		requests: atomic.NewUint64(0),
	}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seq := h.requests.Inc()
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	h.handler.ServeHTTP(recorder, r)

	h.logger.Info("request",
		"seq", seq,
		"method", r.Method,
		"path", r.URL.Path,
		"status", recorder.status,
		"duration", time.Since(start),
		"remote", r.RemoteAddr)
}
