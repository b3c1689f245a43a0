package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

type tokenValidatorMock struct {
	validateFunc func(token string) (uuid.UUID, string, string, error)
	calls        atomic.Int64
}

func (m *tokenValidatorMock) ValidateAccessToken(token string) (uuid.UUID, string, string, error) {
	m.calls.Add(1)
	return m.validateFunc(token)
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &tokenValidatorMock{
		validateFunc: func(token string) (uuid.UUID, string, string, error) {
			if token == "valid-token" {
				return userID, "manager", "Jane Doe", nil
			}
			return uuid.Nil, "", "", errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ctxutil.ActorFromCtx(r.Context())
		if !ok {
			t.Error("expected actor in context")
			return
		}
		if actor.ID != userID {
			t.Errorf("expected actor ID %v, got %v", userID, actor.ID)
		}
		if actor.Role != domain.RoleManager {
			t.Errorf("expected role %v, got %v", domain.RoleManager, actor.Role)
		}
		if actor.Name != "Jane Doe" {
			t.Errorf("expected name %q, got %q", "Jane Doe", actor.Name)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &tokenValidatorMock{
		validateFunc: func(token string) (uuid.UUID, string, string, error) {
			return uuid.Nil, "", "", errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for invalid token")
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_NoAuthHeader(t *testing.T) {
	validator := &tokenValidatorMock{
		validateFunc: func(token string) (uuid.UUID, string, string, error) {
			t.Error("ValidateAccessToken should not be called when no header present")
			return uuid.Nil, "", "", errors.New("should not be called")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ctxutil.ActorFromCtx(r.Context())
		if ok {
			t.Error("expected no actor in context for anonymous request")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if validator.calls.Load() > 0 {
		t.Error("ValidateAccessToken should not be called for anonymous request")
	}
}

func TestAuth_NonBearerToken(t *testing.T) {
	validator := &tokenValidatorMock{
		validateFunc: func(token string) (uuid.UUID, string, string, error) {
			t.Error("ValidateAccessToken should not be called for non-Bearer token")
			return uuid.Nil, "", "", errors.New("should not be called")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ctxutil.ActorFromCtx(r.Context())
		if ok {
			t.Error("expected no actor in context for non-Bearer auth")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if validator.calls.Load() > 0 {
		t.Error("ValidateAccessToken should not be called for non-Bearer token")
	}
}

func TestAuth_EmptyBearerToken(t *testing.T) {
	validator := &tokenValidatorMock{
		validateFunc: func(token string) (uuid.UUID, string, string, error) {
			t.Error("ValidateAccessToken should not be called for empty Bearer token")
			return uuid.Nil, "", "", errors.New("should not be called")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ctxutil.ActorFromCtx(r.Context())
		if ok {
			t.Error("expected no actor in context for empty Bearer token")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if validator.calls.Load() > 0 {
		t.Error("ValidateAccessToken should not be called for empty Bearer token")
	}
}

func TestExtractBearerToken_Cases(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", ""},
		{"bearer with token", "Bearer valid-token", "valid-token"},
		{"bearer lowercase", "bearer valid-token", "valid-token"},
		{"bearer mixed case", "BEARER valid-token", "valid-token"},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearertoken", ""},
		{"bearer empty token", "Bearer ", ""},
		{"just bearer", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			got := extractBearerToken(req)
			if got != tc.want {
				t.Errorf("extractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
