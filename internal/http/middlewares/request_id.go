package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dropDatabas3/signet/internal/observability/logger"
)

const headerRequestID = "X-Request-ID"

// WithRequestID assigns every request an id, echoes it in the response
// header and binds a request-scoped logger to the context.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)

			ctx := setRequestID(r.Context(), id)
			log := logger.L().With(logger.RequestID(id))
			ctx = logger.ToContext(ctx, log)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
