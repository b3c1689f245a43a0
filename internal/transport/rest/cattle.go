package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/cattle"
)

// cattleService defines the minimal interface needed by CattleHandler.
type cattleService interface {
	Create(ctx context.Context, input cattle.CreateInput) (domain.Cattle, error)
	Update(ctx context.Context, input cattle.UpdateInput) (domain.Cattle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.Cattle, error)
	List(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

// CattleHandler serves herd REST endpoints.
type CattleHandler struct {
	svc cattleService
	log *slog.Logger
}

// NewCattleHandler creates a CattleHandler.
func NewCattleHandler(svc cattleService, logger *slog.Logger) *CattleHandler {
	return &CattleHandler{svc: svc, log: logger.With("handler", "cattle")}
}

type cattleRequest struct {
	TagNumber      string   `json:"tagNumber"`
	Name           *string  `json:"name"`
	Breed          string   `json:"breed"`
	DateOfBirth    string   `json:"dateOfBirth"`
	Gender         string   `json:"gender"`
	CurrentWeight  *float64 `json:"currentWeight"`
	AssignedWorker *string  `json:"assignedWorker"`
	Status         string   `json:"status"`
	Notes          *string  `json:"notes"`
}

type cattleResponse struct {
	ID             string   `json:"id"`
	TagNumber      string   `json:"tagNumber"`
	Name           *string  `json:"name,omitempty"`
	Breed          string   `json:"breed"`
	DateOfBirth    string   `json:"dateOfBirth"`
	Gender         string   `json:"gender"`
	CurrentWeight  *float64 `json:"currentWeight,omitempty"`
	AssignedWorker *string  `json:"assignedWorker,omitempty"`
	Status         string   `json:"status"`
	Notes          *string  `json:"notes,omitempty"`

	HealthStatus string  `json:"healthStatus"`
	LastCheckup  *string `json:"lastCheckup,omitempty"`
	NextCheckup  *string `json:"nextCheckup,omitempty"`

	BreedingStatus       string  `json:"breedingStatus"`
	LastBreedingDate     *string `json:"lastBreedingDate,omitempty"`
	ExpectedDeliveryDate *string `json:"expectedDeliveryDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCattleResponse(c domain.Cattle) cattleResponse {
	return cattleResponse{
		ID:             c.ID.String(),
		TagNumber:      c.TagNumber,
		Name:           c.Name,
		Breed:          c.Breed,
		DateOfBirth:    formatDate(c.DateOfBirth),
		Gender:         string(c.Gender),
		CurrentWeight:  c.CurrentWeight,
		AssignedWorker: uuidPtr(c.AssignedWorker),
		Status:         string(c.Status),
		Notes:          c.Notes,

		HealthStatus: string(c.HealthStatus),
		LastCheckup:  formatDatePtr(c.LastCheckup),
		NextCheckup:  formatDatePtr(c.NextCheckup),

		BreedingStatus:       string(c.BreedingStatus),
		LastBreedingDate:     formatDatePtr(c.LastBreedingDate),
		ExpectedDeliveryDate: formatDatePtr(c.ExpectedDeliveryDate),

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCattleResponses(items []domain.Cattle) []cattleResponse {
	out := make([]cattleResponse, len(items))
	for i, c := range items {
		out[i] = toCattleResponse(c)
	}
	return out
}

// parseAssignedWorker turns the optional worker reference into a UUID.
// An empty string counts as unset.
func parseAssignedWorker(s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// Create handles POST /cattle.
func (h *CattleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker, ok := parseAssignedWorker(req.AssignedWorker)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assignedWorker")
		return
	}

	created, err := h.svc.Create(r.Context(), cattle.CreateInput{
		TagNumber:      req.TagNumber,
		Name:           req.Name,
		Breed:          req.Breed,
		DateOfBirth:    req.DateOfBirth,
		Gender:         domain.Gender(req.Gender),
		CurrentWeight:  req.CurrentWeight,
		AssignedWorker: worker,
		Status:         domain.CattleStatus(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCattleResponse(created))
}

// Update handles PUT /cattle/{id}.
func (h *CattleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req cattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker, ok := parseAssignedWorker(req.AssignedWorker)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assignedWorker")
		return
	}

	updated, err := h.svc.Update(r.Context(), cattle.UpdateInput{
		ID:             id,
		TagNumber:      req.TagNumber,
		Name:           req.Name,
		Breed:          req.Breed,
		DateOfBirth:    req.DateOfBirth,
		Gender:         domain.Gender(req.Gender),
		CurrentWeight:  req.CurrentWeight,
		AssignedWorker: worker,
		Status:         domain.CattleStatus(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCattleResponse(updated))
}

// Delete handles DELETE /cattle/{id}.
func (h *CattleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /cattle/{id}.
func (h *CattleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	animal, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCattleResponse(animal))
}

// List handles GET /cattle?search=&status=&gender=&limit=&offset=.
func (h *CattleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CattleFilter{
		Search: queryString(r, "search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := queryString(r, "status"); v != nil {
		status := domain.CattleStatus(*v)
		filter.Status = &status
	}
	if v := queryString(r, "gender"); v != nil {
		gender := domain.Gender(*v)
		filter.Gender = &gender
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCattleResponses(items))
}

// History handles GET /cattle/{id}/history.
func (h *CattleHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditResponses(records))
}
