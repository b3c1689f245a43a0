package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// tokenValidator validates an access token and returns the identity it
// carries. Implemented by auth.JWTManager.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, string, error)
}

// Auth returns middleware that resolves a Bearer token into an Actor in the
// request context. Requests without an Authorization header pass through
// anonymously; requests with an invalid token are rejected with 401.
// Authorization decisions are made downstream in the services.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, role, name, err := validator.ValidateAccessToken(token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid or expired token"}`))
				return
			}

			actor := domain.Actor{ID: userID, Name: name, Role: domain.Role(role)}
			ctx := ctxutil.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns "" if the header is absent or is not a Bearer scheme.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
