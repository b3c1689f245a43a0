package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// Origin returns middleware that records the client IP address and user
// agent in the request context so audit entries can attribute each write.
// X-Forwarded-For takes precedence over RemoteAddr when present.
func Origin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := domain.Origin{
				IPAddress: clientIP(r),
				UserAgent: r.UserAgent(),
			}

			ctx := ctxutil.WithOrigin(r.Context(), origin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First entry is the originating client.
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
