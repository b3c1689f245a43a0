package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/config"
	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

type auditRepo interface {
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
	GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Service exposes the audit trail read side. The trail itself is written by
// the mutation services; nothing here ever modifies it.
type Service struct {
	log   *slog.Logger
	audit auditRepo
	cfg   config.FarmConfig
}

// NewService creates a new Audit service.
func NewService(logger *slog.Logger, audit auditRepo, cfg config.FarmConfig) *Service {
	return &Service{
		log:   logger.With("service", "audit"),
		audit: audit,
		cfg:   cfg,
	}
}

// authorize restricts trail reads to admins. The per-record history views
// on the other services stay open to any authenticated user; the raw trail
// exposes user activity across the whole farm.
func authorize(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleAdmin {
		return domain.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}

// EntityHistory returns the audit trail of one record, newest first.
func (s *Service) EntityHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := authorize(ctx); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, domain.NewValidationError("entity_type", "unknown entity type")
	}
	if entityID == uuid.Nil {
		return nil, domain.NewValidationError("entity_id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, entityType, entityID, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load entity history: %w", err)
	}
	return records, nil
}

// UserActivity returns everything one user did, newest first.
func (s *Service) UserActivity(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	if _, err := authorize(ctx); err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must be non-negative")
	}

	if limit <= 0 {
		limit = s.cfg.ListDefaultLimit
	}
	if limit > s.cfg.ListMaxLimit {
		limit = s.cfg.ListMaxLimit
	}

	records, err := s.audit.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("load user activity: %w", err)
	}
	return records, nil
}
