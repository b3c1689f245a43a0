package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// RequestIDHeader is the HTTP header carrying the request identifier.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that attaches a request identifier to the
// request context and echoes it back in the response headers. An incoming
// X-Request-Id header is reused; otherwise a new UUID is generated.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set(RequestIDHeader, requestID)

			ctx := ctxutil.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
