package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/health"
)

// healthRecordService defines the minimal interface needed by
// HealthRecordHandler.
type healthRecordService interface {
	Create(ctx context.Context, input health.CreateInput) (domain.HealthRecord, error)
	Update(ctx context.Context, input health.UpdateInput) (domain.HealthRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.HealthRecord, error)
	List(ctx context.Context, filter domain.HealthRecordFilter) ([]domain.HealthRecord, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

// HealthRecordHandler serves health record REST endpoints.
type HealthRecordHandler struct {
	svc healthRecordService
	log *slog.Logger
}

// NewHealthRecordHandler creates a HealthRecordHandler.
func NewHealthRecordHandler(svc healthRecordService, logger *slog.Logger) *HealthRecordHandler {
	return &HealthRecordHandler{svc: svc, log: logger.With("handler", "health_record")}
}

type healthRecordCreateRequest struct {
	CattleID string `json:"cattleId"`
	healthRecordFields
}

// healthRecordFields are the fields shared by create and update. The owning
// animal is only present on create; it cannot be changed afterwards.
type healthRecordFields struct {
	DateOfCheckup   string   `json:"dateOfCheckup"`
	HealthIssue     string   `json:"healthIssue"`
	Symptoms        *string  `json:"symptoms"`
	Diagnosis       *string  `json:"diagnosis"`
	TreatmentGiven  string   `json:"treatmentGiven"`
	TreatmentCost   float64  `json:"treatmentCost"`
	Medications     *string  `json:"medications"`
	NextCheckupDate *string  `json:"nextCheckupDate"`
	AttendedBy      string   `json:"attendedBy"`
	Notes           *string  `json:"notes"`
	Status          string   `json:"status"`
}

type healthRecordResponse struct {
	ID              string    `json:"id"`
	CattleID        string    `json:"cattleId"`
	DateOfCheckup   string    `json:"dateOfCheckup"`
	HealthIssue     string    `json:"healthIssue"`
	Symptoms        *string   `json:"symptoms,omitempty"`
	Diagnosis       *string   `json:"diagnosis,omitempty"`
	TreatmentGiven  string    `json:"treatmentGiven"`
	TreatmentCost   float64   `json:"treatmentCost"`
	Medications     *string   `json:"medications,omitempty"`
	NextCheckupDate *string   `json:"nextCheckupDate,omitempty"`
	AttendedBy      string    `json:"attendedBy"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toHealthRecordResponse(rec domain.HealthRecord) healthRecordResponse {
	return healthRecordResponse{
		ID:              rec.ID.String(),
		CattleID:        rec.CattleID.String(),
		DateOfCheckup:   formatDate(rec.DateOfCheckup),
		HealthIssue:     rec.HealthIssue,
		Symptoms:        rec.Symptoms,
		Diagnosis:       rec.Diagnosis,
		TreatmentGiven:  rec.TreatmentGiven,
		TreatmentCost:   rec.TreatmentCost,
		Medications:     rec.Medications,
		NextCheckupDate: formatDatePtr(rec.NextCheckupDate),
		AttendedBy:      rec.AttendedBy.String(),
		Notes:           rec.Notes,
		Status:          string(rec.Status),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

// parseOptionalUUID accepts an empty string as the zero UUID so that the
// service's own required-field validation produces the error message.
func parseOptionalUUID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /health-records.
func (h *HealthRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req healthRecordCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cattleID, ok := parseOptionalUUID(req.CattleID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid cattleId")
		return
	}
	attendedBy, ok := parseOptionalUUID(req.AttendedBy)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid attendedBy")
		return
	}

	created, err := h.svc.Create(r.Context(), health.CreateInput{
		CattleID:        cattleID,
		DateOfCheckup:   req.DateOfCheckup,
		HealthIssue:     req.HealthIssue,
		Symptoms:        req.Symptoms,
		Diagnosis:       req.Diagnosis,
		TreatmentGiven:  req.TreatmentGiven,
		TreatmentCost:   req.TreatmentCost,
		Medications:     req.Medications,
		NextCheckupDate: req.NextCheckupDate,
		AttendedBy:      attendedBy,
		Notes:           req.Notes,
		Status:          domain.HealthRecordStatus(req.Status),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHealthRecordResponse(created))
}

// Update handles PUT /health-records/{id}.
func (h *HealthRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req healthRecordFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendedBy, ok := parseOptionalUUID(req.AttendedBy)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid attendedBy")
		return
	}

	updated, err := h.svc.Update(r.Context(), health.UpdateInput{
		ID:              id,
		DateOfCheckup:   req.DateOfCheckup,
		HealthIssue:     req.HealthIssue,
		Symptoms:        req.Symptoms,
		Diagnosis:       req.Diagnosis,
		TreatmentGiven:  req.TreatmentGiven,
		TreatmentCost:   req.TreatmentCost,
		Medications:     req.Medications,
		NextCheckupDate: req.NextCheckupDate,
		AttendedBy:      attendedBy,
		Notes:           req.Notes,
		Status:          domain.HealthRecordStatus(req.Status),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toHealthRecordResponse(updated))
}

// Delete handles DELETE /health-records/{id}.
func (h *HealthRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /health-records/{id}.
func (h *HealthRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toHealthRecordResponse(rec))
}

// List handles GET /health-records?cattleId=&status=&limit=&offset=.
func (h *HealthRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.HealthRecordFilter{
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
		status := domain.HealthRecordStatus(*v)
		filter.Status = &status
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]healthRecordResponse, len(items))
	for i, rec := range items {
		out[i] = toHealthRecordResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /health-records/{id}/history.
func (h *HealthRecordHandler) History(w http.ResponseWriter, r *http.Request) {
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
