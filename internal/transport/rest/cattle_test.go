package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/cattle"
)

type cattleServiceMock struct {
	CreateFunc  func(ctx context.Context, input cattle.CreateInput) (domain.Cattle, error)
	UpdateFunc  func(ctx context.Context, input cattle.UpdateInput) (domain.Cattle, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	GetFunc     func(ctx context.Context, id uuid.UUID) (domain.Cattle, error)
	ListFunc    func(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error)
	HistoryFunc func(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

func (m *cattleServiceMock) Create(ctx context.Context, input cattle.CreateInput) (domain.Cattle, error) {
	return m.CreateFunc(ctx, input)
}

func (m *cattleServiceMock) Update(ctx context.Context, input cattle.UpdateInput) (domain.Cattle, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *cattleServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *cattleServiceMock) Get(ctx context.Context, id uuid.UUID) (domain.Cattle, error) {
	return m.GetFunc(ctx, id)
}

func (m *cattleServiceMock) List(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error) {
	return m.ListFunc(ctx, filter)
}

func (m *cattleServiceMock) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	return m.HistoryFunc(ctx, id)
}

func sampleCattle() domain.Cattle {
	return domain.Cattle{
		ID:             uuid.New(),
		TagNumber:      "KE-001",
		Breed:          "Friesian",
		DateOfBirth:    time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderFemale,
		Status:         domain.CattleStatusActive,
		HealthStatus:   domain.HealthStatusHealthy,
		BreedingStatus: domain.BreedingStatusOpen,
	}
}

func TestCattleCreate_Returns201(t *testing.T) {
	t.Parallel()

	animal := sampleCattle()
	var gotInput cattle.CreateInput
	svc := &cattleServiceMock{
		CreateFunc: func(ctx context.Context, input cattle.CreateInput) (domain.Cattle, error) {
			gotInput = input
			return animal, nil
		},
	}
	h := NewCattleHandler(svc, slog.Default())

	body := `{"tagNumber":"KE-001","breed":"Friesian","dateOfBirth":"2021-03-15","gender":"female"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cattle", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotInput.TagNumber != "KE-001" || gotInput.DateOfBirth != "2021-03-15" {
		t.Errorf("unexpected input passed to service: %+v", gotInput)
	}

	var resp cattleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DateOfBirth != "2021-03-15" {
		t.Errorf("dates must be YYYY-MM-DD, got %q", resp.DateOfBirth)
	}
	if resp.HealthStatus != "healthy" || resp.BreedingStatus != "open" {
		t.Errorf("denormalized statuses missing: %+v", resp)
	}
}

func TestCattleCreate_BadBody(t *testing.T) {
	t.Parallel()

	h := NewCattleHandler(&cattleServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cattle", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCattleCreate_ValidationFieldsInBody(t *testing.T) {
	t.Parallel()

	svc := &cattleServiceMock{
		CreateFunc: func(ctx context.Context, input cattle.CreateInput) (domain.Cattle, error) {
			return domain.Cattle{}, domain.NewValidationErrors([]domain.FieldError{
				{Field: "tag_number", Message: "required"},
				{Field: "gender", Message: "must be male or female"},
			})
		},
	}
	h := NewCattleHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cattle", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(resp.Fields))
	}
}

func TestCattleGet_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewCattleHandler(&cattleServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cattle/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCattleGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &cattleServiceMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Cattle, error) {
			return domain.Cattle{}, domain.ErrNotFound
		},
	}
	h := NewCattleHandler(svc, slog.Default())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cattle/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCattleList_PassesFilter(t *testing.T) {
	t.Parallel()

	var gotFilter domain.CattleFilter
	svc := &cattleServiceMock{
		ListFunc: func(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error) {
			gotFilter = filter
			return []domain.Cattle{sampleCattle()}, nil
		},
	}
	h := NewCattleHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cattle?search=KE&status=active&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotFilter.Search == nil || *gotFilter.Search != "KE" {
		t.Errorf("search not passed: %+v", gotFilter)
	}
	if gotFilter.Status == nil || *gotFilter.Status != domain.CattleStatusActive {
		t.Errorf("status not passed: %+v", gotFilter)
	}
	if gotFilter.Limit != 10 || gotFilter.Offset != 20 {
		t.Errorf("paging not passed: %+v", gotFilter)
	}
}

func TestCattleDelete_Returns204(t *testing.T) {
	t.Parallel()

	svc := &cattleServiceMock{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	h := NewCattleHandler(svc, slog.Default())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cattle/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}
