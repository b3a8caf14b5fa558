package middlewares

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/signet/internal/observability/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithAccessLog emits one structured entry per request.
func WithAccessLog() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.From(r.Context()).Info("http request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(rec.status),
				logger.Duration(time.Since(start)),
				logger.ClientIP(r.RemoteAddr),
			)
		})
	}
}
