package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/worker"
)

// workerService defines the minimal interface needed by WorkerHandler.
type workerService interface {
	Create(ctx context.Context, input worker.CreateInput) (domain.Worker, error)
	Update(ctx context.Context, input worker.UpdateInput) (domain.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.Worker, error)
	List(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

// WorkerHandler serves staff REST endpoints.
type WorkerHandler struct {
	svc workerService
	log *slog.Logger
}

// NewWorkerHandler creates a WorkerHandler.
func NewWorkerHandler(svc workerService, logger *slog.Logger) *WorkerHandler {
	return &WorkerHandler{svc: svc, log: logger.With("handler", "worker")}
}

type workerCreateRequest struct {
	FullName             string  `json:"fullName"`
	Email                string  `json:"email"`
	PhoneNumber          string  `json:"phoneNumber"`
	IDNumber             string  `json:"idNumber"`
	Role                 string  `json:"role"`
	DateHired            string  `json:"dateHired"`
	Salary               float64 `json:"salary"`
	AssignedDuties       *string `json:"assignedDuties"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"passwordConfirmation"`
}

type workerUpdateRequest struct {
	FullName             string  `json:"fullName"`
	Email                string  `json:"email"`
	PhoneNumber          string  `json:"phoneNumber"`
	IDNumber             string  `json:"idNumber"`
	Role                 string  `json:"role"`
	DateHired            string  `json:"dateHired"`
	Salary               float64 `json:"salary"`
	AssignedDuties       *string `json:"assignedDuties"`
	Status               string  `json:"status"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"passwordConfirmation"`
}

type workerResponse struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	IDNumber       string        `json:"idNumber"`
	DateHired      string        `json:"dateHired"`
	AssignedDuties *string       `json:"assignedDuties,omitempty"`
	Salary         float64       `json:"salary"`
	User           *userResponse `json:"user,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func toWorkerResponse(w domain.Worker) workerResponse {
	resp := workerResponse{
		ID:             w.ID.String(),
		UserID:         w.UserID.String(),
		IDNumber:       w.IDNumber,
		DateHired:      formatDate(w.DateHired),
		AssignedDuties: w.AssignedDuties,
		Salary:         w.Salary,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
	if w.User != nil {
		resp.User = &userResponse{
			ID:          w.User.ID.String(),
			FullName:    w.User.FullName,
			Username:    w.User.Username,
			Email:       w.User.Email,
			PhoneNumber: w.User.PhoneNumber,
			Role:        string(w.User.Role),
			Status:      string(w.User.Status),
			LastLogin:   w.User.LastLogin,
		}
	}
	return resp
}

// Create handles POST /workers.
func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req workerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), worker.CreateInput{
		FullName:             req.FullName,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		IDNumber:             req.IDNumber,
		Role:                 domain.Role(req.Role),
		DateHired:            req.DateHired,
		Salary:               req.Salary,
		AssignedDuties:       req.AssignedDuties,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkerResponse(created))
}

// Update handles PUT /workers/{id}.
func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req workerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), worker.UpdateInput{
		ID:                   id,
		FullName:             req.FullName,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		IDNumber:             req.IDNumber,
		Role:                 domain.Role(req.Role),
		DateHired:            req.DateHired,
		Salary:               req.Salary,
		AssignedDuties:       req.AssignedDuties,
		Status:               domain.AccountStatus(req.Status),
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(updated))
}

// Delete handles DELETE /workers/{id}.
func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /workers/{id}.
func (h *WorkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(item))
}

// List handles GET /workers?search=&role=&status=&limit=&offset=.
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.WorkerFilter{
		Search: queryString(r, "search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := queryString(r, "role"); v != nil {
		role := domain.Role(*v)
		filter.Role = &role
	}
	if v := queryString(r, "status"); v != nil {
		status := domain.AccountStatus(*v)
		filter.Status = &status
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]workerResponse, len(items))
	for i, item := range items {
		out[i] = toWorkerResponse(item)
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /workers/{id}/history.
func (h *WorkerHandler) History(w http.ResponseWriter, r *http.Request) {
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
