package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// auditService defines the minimal interface needed by AuditHandler.
type auditService interface {
	EntityHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditRecord, error)
	UserActivity(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// AuditHandler serves the raw audit trail. Access control lives in the
// service; these endpoints reject non-admin callers with 403.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

// EntityHistory handles GET /audit/{entityType}/{id}.
func (h *AuditHandler) EntityHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.EntityHistory(r.Context(), domain.EntityType(r.PathValue("entityType")), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditResponses(records))
}

// UserActivity handles GET /audit/users/{id}?limit=&offset=.
func (h *AuditHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.UserActivity(r.Context(), id, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditResponses(records))
}
