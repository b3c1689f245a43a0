package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/internal/service/feed"
)

// feedService defines the minimal interface needed by FeedHandler.
type feedService interface {
	Create(ctx context.Context, input feed.CreateInput) (domain.Feed, error)
	Update(ctx context.Context, input feed.UpdateInput) (domain.Feed, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (domain.Feed, error)
	List(ctx context.Context, filter domain.FeedFilter) ([]domain.Feed, error)
	Ledger(ctx context.Context, feedID uuid.UUID, limit, offset int) ([]domain.FeedTransaction, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error)
}

// FeedHandler serves feed inventory REST endpoints.
type FeedHandler struct {
	svc feedService
	log *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(svc feedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, log: logger.With("handler", "feed")}
}

type feedRequest struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Description     *string  `json:"description"`
	Supplier        *string  `json:"supplier"`
	UnitOfMeasure   string   `json:"unitOfMeasure"`
	UnitCost        float64  `json:"unitCost"`
	CurrentQuantity float64  `json:"currentQuantity"`
	ReorderLevel    float64  `json:"reorderLevel"`
	ExpiryDate      string   `json:"expiryDate"`
	StorageLocation *string  `json:"storageLocation"`
	Notes           *string  `json:"notes"`
}

type feedResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Description     *string   `json:"description,omitempty"`
	Supplier        *string   `json:"supplier,omitempty"`
	UnitOfMeasure   string    `json:"unitOfMeasure"`
	UnitCost        float64   `json:"unitCost"`
	CurrentQuantity float64   `json:"currentQuantity"`
	ReorderLevel    float64   `json:"reorderLevel"`
	ExpiryDate      string    `json:"expiryDate"`
	StorageLocation *string   `json:"storageLocation,omitempty"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type feedTransactionResponse struct {
	ID        string    `json:"id"`
	FeedID    string    `json:"feedId"`
	Type      string    `json:"type"`
	Quantity  float64   `json:"quantity"`
	UnitCost  float64   `json:"unitCost"`
	TotalCost float64   `json:"totalCost"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFeedResponse(f domain.Feed) feedResponse {
	return feedResponse{
		ID:              f.ID.String(),
		Name:            f.Name,
		Type:            string(f.Type),
		Description:     f.Description,
		Supplier:        f.Supplier,
		UnitOfMeasure:   string(f.UnitOfMeasure),
		UnitCost:        f.UnitCost,
		CurrentQuantity: f.CurrentQuantity,
		ReorderLevel:    f.ReorderLevel,
		ExpiryDate:      formatDate(f.ExpiryDate),
		StorageLocation: f.StorageLocation,
		Status:          string(f.Status),
		Notes:           f.Notes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Create handles POST /feeds.
func (h *FeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), feed.CreateInput{
		Name:            req.Name,
		Type:            domain.FeedType(req.Type),
		Description:     req.Description,
		Supplier:        req.Supplier,
		UnitOfMeasure:   domain.UnitOfMeasure(req.UnitOfMeasure),
		UnitCost:        req.UnitCost,
		CurrentQuantity: req.CurrentQuantity,
		ReorderLevel:    req.ReorderLevel,
		ExpiryDate:      req.ExpiryDate,
		StorageLocation: req.StorageLocation,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFeedResponse(created))
}

// Update handles PUT /feeds/{id}.
func (h *FeedHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), feed.UpdateInput{
		ID:              id,
		Name:            req.Name,
		Type:            domain.FeedType(req.Type),
		Description:     req.Description,
		Supplier:        req.Supplier,
		UnitOfMeasure:   domain.UnitOfMeasure(req.UnitOfMeasure),
		UnitCost:        req.UnitCost,
		CurrentQuantity: req.CurrentQuantity,
		ReorderLevel:    req.ReorderLevel,
		ExpiryDate:      req.ExpiryDate,
		StorageLocation: req.StorageLocation,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedResponse(updated))
}

// Delete handles DELETE /feeds/{id}.
func (h *FeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /feeds/{id}.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedResponse(item))
}

// List handles GET /feeds?search=&type=&status=&limit=&offset=.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.FeedFilter{
		Search: queryString(r, "search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := queryString(r, "type"); v != nil {
		feedType := domain.FeedType(*v)
		filter.Type = &feedType
	}
	if v := queryString(r, "status"); v != nil {
		status := domain.StockStatus(*v)
		filter.Status = &status
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]feedResponse, len(items))
	for i, item := range items {
		out[i] = toFeedResponse(item)
	}
	writeJSON(w, http.StatusOK, out)
}

// Ledger handles GET /feeds/{id}/transactions?limit=&offset=.
func (h *FeedHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Ledger(r.Context(), id, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]feedTransactionResponse, len(entries))
	for i, entry := range entries {
		out[i] = feedTransactionResponse{
			ID:        entry.ID.String(),
			FeedID:    entry.FeedID.String(),
			Type:      string(entry.Type),
			Quantity:  entry.Quantity,
			UnitCost:  entry.UnitCost,
			TotalCost: entry.TotalCost,
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /feeds/{id}/history.
func (h *FeedHandler) History(w http.ResponseWriter, r *http.Request) {
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
