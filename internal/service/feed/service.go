package feed

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

type feedRepo interface {
	Create(ctx context.Context, f domain.Feed) (domain.Feed, error)
	Update(ctx context.Context, f domain.Feed) (domain.Feed, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateTransaction(ctx context.Context, tx domain.FeedTransaction) (domain.FeedTransaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Feed, error)
	List(ctx context.Context, filter domain.FeedFilter) ([]domain.Feed, error)
	ListTransactions(ctx context.Context, feedID uuid.UUID, limit, offset int) ([]domain.FeedTransaction, error)
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

// Service implements feed inventory management. Stock status is derived on
// every write, and every quantity change appends one ledger row in the same
// transaction.
type Service struct {
	log   *slog.Logger
	feeds feedRepo
	audit auditRepo
	tx    txManager
	cfg   config.FarmConfig
	now   func() time.Time
}

// NewService creates a new Feed service.
func NewService(
	logger *slog.Logger,
	feeds feedRepo,
	audit auditRepo,
	tx txManager,
	cfg config.FarmConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "feed"),
		feeds: feeds,
		audit: audit,
		tx:    tx,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *Service) authorize(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	if !domain.IsAllowed(domain.EntityTypeFeed, actor.Role) {
		return domain.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}

func requireActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

func auditRecord(ctx context.Context, actor domain.Actor, action domain.AuditAction, entityID uuid.UUID, oldValues, newValues map[string]any) domain.AuditRecord {
	origin := ctxutil.OriginFromCtx(ctx)
	userID := actor.ID
	return domain.AuditRecord{
		UserID:     &userID,
		Action:     action,
		EntityType: domain.EntityTypeFeed,
		EntityID:   &entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  origin.IPAddress,
		UserAgent:  origin.UserAgent,
	}
}

func snapshot(f domain.Feed) map[string]any {
	m := map[string]any{
		"feed_name":        f.Name,
		"feed_type":        string(f.Type),
		"unit_of_measure":  string(f.UnitOfMeasure),
		"unit_cost":        f.UnitCost,
		"current_quantity": f.CurrentQuantity,
		"reorder_level":    f.ReorderLevel,
		"expiry_date":      f.ExpiryDate.Format(domain.DateLayout),
		"status":           string(f.Status),
	}
	if f.Supplier != nil {
		m["supplier"] = *f.Supplier
	}
	return m
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.ListDefaultLimit
	}
	if limit > s.cfg.ListMaxLimit {
		return s.cfg.ListMaxLimit
	}
	return limit
}
