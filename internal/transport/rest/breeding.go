package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/breeding"
)

// breedingService defines the minimal interface needed by BreedingHandler.
type breedingService interface {
	Create(ctx context.Context, input breeding.CreateInput) (domain.BreedingRecord, error)
	Update(ctx context.Context, input breeding.UpdateInput) (domain.BreedingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)
	List(ctx context.Context, filter domain.BreedingRecordFilter) ([]domain.BreedingRecord, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

// BreedingHandler serves breeding record REST endpoints.
type BreedingHandler struct {
	svc breedingService
	log *slog.Logger
}

// NewBreedingHandler creates a BreedingHandler.
func NewBreedingHandler(svc breedingService, logger *slog.Logger) *BreedingHandler {
	return &BreedingHandler{svc: svc, log: logger.With("handler", "breeding")}
}

type breedingCreateRequest struct {
	CattleID string `json:"cattleId"`
	breedingFields
}

type breedingFields struct {
	BreedingDate    string  `json:"breedingDate"`
	BreedingType    string  `json:"breedingType"`
	SireDetails     string  `json:"sireDetails"`
	SemenBatch      *string `json:"semenBatch"`
	TechnicianID    *string `json:"technicianId"`
	BreedingCost    float64 `json:"breedingCost"`
	Status          string  `json:"status"`
	PregnancyStatus *string `json:"pregnancyStatus"`
	Notes           *string `json:"notes"`
}

type breedingResponse struct {
	ID              string    `json:"id"`
	CattleID        string    `json:"cattleId"`
	BreedingDate    string    `json:"breedingDate"`
	BreedingType    string    `json:"breedingType"`
	SireDetails     string    `json:"sireDetails"`
	SemenBatch      *string   `json:"semenBatch,omitempty"`
	TechnicianID    *string   `json:"technicianId,omitempty"`
	BreedingCost    float64   `json:"breedingCost"`
	Status          string    `json:"status"`
	PregnancyStatus *string   `json:"pregnancyStatus,omitempty"`
	ExpectedDate    string    `json:"expectedDate"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toBreedingResponse(rec domain.BreedingRecord) breedingResponse {
	var pregnancy *string
	if rec.PregnancyStatus != nil {
		s := string(*rec.PregnancyStatus)
		pregnancy = &s
	}
	return breedingResponse{
		ID:              rec.ID.String(),
		CattleID:        rec.CattleID.String(),
		BreedingDate:    formatDate(rec.BreedingDate),
		BreedingType:    string(rec.BreedingType),
		SireDetails:     rec.SireDetails,
		SemenBatch:      rec.SemenBatch,
		TechnicianID:    uuidPtr(rec.TechnicianID),
		BreedingCost:    rec.BreedingCost,
		Status:          string(rec.Status),
		PregnancyStatus: pregnancy,
		ExpectedDate:    formatDate(rec.ExpectedDate),
		Notes:           rec.Notes,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func (f breedingFields) technician() (*uuid.UUID, bool) {
	if f.TechnicianID == nil || *f.TechnicianID == "" {
		return nil, true
	}
	id, err := uuid.Parse(*f.TechnicianID)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (f breedingFields) pregnancy() *domain.PregnancyStatus {
	if f.PregnancyStatus == nil || *f.PregnancyStatus == "" {
		return nil
	}
	s := domain.PregnancyStatus(*f.PregnancyStatus)
	return &s
}

// Create handles POST /breeding-records.
func (h *BreedingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req breedingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cattleID, ok := parseOptionalUUID(req.CattleID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid cattleId")
		return
	}
	technician, ok := req.technician()
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid technicianId")
		return
	}

	created, err := h.svc.Create(r.Context(), breeding.CreateInput{
		CattleID:        cattleID,
		BreedingDate:    req.BreedingDate,
		BreedingType:    domain.BreedingType(req.BreedingType),
		SireDetails:     req.SireDetails,
		SemenBatch:      req.SemenBatch,
		TechnicianID:    technician,
		BreedingCost:    req.BreedingCost,
		Status:          domain.BreedingRecordStatus(req.Status),
		PregnancyStatus: req.pregnancy(),
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBreedingResponse(created))
}

// Update handles PUT /breeding-records/{id}.
func (h *BreedingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req breedingFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	technician, ok := req.technician()
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid technicianId")
		return
	}

	updated, err := h.svc.Update(r.Context(), breeding.UpdateInput{
		ID:              id,
		BreedingDate:    req.BreedingDate,
		BreedingType:    domain.BreedingType(req.BreedingType),
		SireDetails:     req.SireDetails,
		SemenBatch:      req.SemenBatch,
		TechnicianID:    technician,
		BreedingCost:    req.BreedingCost,
		Status:          domain.BreedingRecordStatus(req.Status),
		PregnancyStatus: req.pregnancy(),
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBreedingResponse(updated))
}

// Delete handles DELETE /breeding-records/{id}.
func (h *BreedingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /breeding-records/{id}.
func (h *BreedingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBreedingResponse(rec))
}

// List handles GET /breeding-records?cattleId=&status=&limit=&offset=.
func (h *BreedingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.BreedingRecordFilter{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := queryString(r, "cattleId"); v != nil {
		cattleID, err := uuid.Parse(*v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cattleId")
			return
		}
		filter.CattleID = &cattleID
	}
	if v := queryString(r, "status"); v != nil {
		status := domain.BreedingRecordStatus(*v)
		filter.Status = &status
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]breedingResponse, len(items))
	for i, rec := range items {
		out[i] = toBreedingResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /breeding-records/{id}/history.
func (h *BreedingHandler) History(w http.ResponseWriter, r *http.Request) {
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
