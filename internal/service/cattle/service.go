package cattle

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/config"
	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cattleRepo interface {
	Create(ctx context.Context, c domain.Cattle) (domain.Cattle, error)
	Update(ctx context.Context, c domain.Cattle) (domain.Cattle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Cattle, error)
	ExistsByTagNumber(ctx context.Context, tagNumber string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error)
}

type auditRepo interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the herd registry business logic.
type Service struct {
	log    *slog.Logger
	cattle cattleRepo
	audit  auditRepo
	tx     txManager
	cfg    config.FarmConfig
	now    func() time.Time
}

// NewService creates a new Cattle service.
func NewService(
	logger *slog.Logger,
	cattle cattleRepo,
	audit auditRepo,
	tx txManager,
	cfg config.FarmConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "cattle"),
		cattle: cattle,
		audit:  audit,
		tx:     tx,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// authorize resolves the actor and checks mutation rights on cattle.
func (s *Service) authorize(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	if !domain.IsAllowed(domain.EntityTypeCattle, actor.Role) {
		return domain.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}

// requireActor resolves the actor without a role check, for read paths.
func requireActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

// auditRecord assembles the audit entry for one mutation, taking request
// origin metadata from the context.
func auditRecord(ctx context.Context, actor domain.Actor, action domain.AuditAction, entityID uuid.UUID, oldValues, newValues map[string]any) domain.AuditRecord {
	origin := ctxutil.OriginFromCtx(ctx)
	userID := actor.ID
	return domain.AuditRecord{
		UserID:     &userID,
		Action:     action,
		EntityType: domain.EntityTypeCattle,
		EntityID:   &entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  origin.IPAddress,
		UserAgent:  origin.UserAgent,
	}
}

// snapshot picks the fields worth reviewing in the audit trail.
func snapshot(c domain.Cattle) map[string]any {
	m := map[string]any{
		"tag_number":    c.TagNumber,
		"breed":         c.Breed,
		"date_of_birth": c.DateOfBirth.Format(domain.DateLayout),
		"gender":        string(c.Gender),
		"status":        string(c.Status),
	}
	if c.Name != nil {
		m["name"] = *c.Name
	}
	if c.CurrentWeight != nil {
		m["current_weight"] = *c.CurrentWeight
	}
	if c.AssignedWorker != nil {
		m["assigned_worker"] = c.AssignedWorker.String()
	}
	return m
}

// clampLimit ensures a list limit is positive and within the configured cap.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.ListDefaultLimit
	}
	if limit > s.cfg.ListMaxLimit {
		return s.cfg.ListMaxLimit
	}
	return limit
}
