package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/authsvc"
)

type authServiceMock struct {
	LoginFunc func(ctx context.Context, input authsvc.LoginInput) (authsvc.LoginResult, error)
}

func (m *authServiceMock) Login(ctx context.Context, input authsvc.LoginInput) (authsvc.LoginResult, error) {
	return m.LoginFunc(ctx, input)
}

func TestLogin_Returns200WithToken(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input authsvc.LoginInput) (authsvc.LoginResult, error) {
			if input.Username != "grace.wanjiru" || input.Password != "correct-horse" {
				t.Errorf("unexpected input: %+v", input)
			}
			return authsvc.LoginResult{
				Token: "signed.jwt.token",
				User: domain.User{
					ID:       uuid.New(),
					FullName: "Grace Wanjiru",
					Username: "grace.wanjiru",
					Role:     domain.RoleManager,
					Status:   domain.AccountStatusActive,
				},
			}, nil
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	body := `{"username":"grace.wanjiru","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("expected token, got %q", resp.Token)
	}
	if resp.User.Username != "grace.wanjiru" || resp.User.Role != "manager" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") || strings.Contains(rec.Body.String(), "Hash") {
		t.Error("credentials must never appear in the response")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input authsvc.LoginInput) (authsvc.LoginResult, error) {
			return authsvc.LoginResult{}, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	body := `{"username":"grace.wanjiru","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input authsvc.LoginInput) (authsvc.LoginResult, error) {
			return authsvc.LoginResult{}, domain.ErrForbidden
		},
	}
	h := NewAuthHandler(svc, slog.Default())

	body := `{"username":"grace.wanjiru","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestLogin_BadBody(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
