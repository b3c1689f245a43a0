package breeding

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

type breedingRepo interface {
	Create(ctx context.Context, rec domain.BreedingRecord) (domain.BreedingRecord, error)
	Update(ctx context.Context, rec domain.BreedingRecord) (domain.BreedingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)
	List(ctx context.Context, filter domain.BreedingRecordFilter) ([]domain.BreedingRecord, error)
}

type cattleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Cattle, error)
	UpdateBreedingSummary(ctx context.Context, id uuid.UUID, status domain.BreedingStatus, lastBreedingDate time.Time, expectedDeliveryDate time.Time) error
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

// Service implements breeding record keeping. The expected delivery date is
// always computed from the breeding date, and every mutation rewrites the
// dam's denormalized breeding summary in the same transaction.
type Service struct {
	log     *slog.Logger
	records breedingRepo
	cattle  cattleRepo
	audit   auditRepo
	tx      txManager
	cfg     config.FarmConfig
	now     func() time.Time
}

// NewService creates a new Breeding service.
func NewService(
	logger *slog.Logger,
	records breedingRepo,
	cattle cattleRepo,
	audit auditRepo,
	tx txManager,
	cfg config.FarmConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "breeding"),
		records: records,
		cattle:  cattle,
		audit:   audit,
		tx:      tx,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
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
	if !domain.IsAllowed(domain.EntityTypeBreedingRecord, actor.Role) {
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
		EntityType: domain.EntityTypeBreedingRecord,
		EntityID:   &entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  origin.IPAddress,
		UserAgent:  origin.UserAgent,
	}
}

func snapshot(rec domain.BreedingRecord) map[string]any {
	m := map[string]any{
		"cattle_id":     rec.CattleID.String(),
		"breeding_date": rec.BreedingDate.Format(domain.DateLayout),
		"breeding_type": string(rec.BreedingType),
		"sire_details":  rec.SireDetails,
		"status":        string(rec.Status),
		"expected_date": rec.ExpectedDate.Format(domain.DateLayout),
	}
	if rec.PregnancyStatus != nil {
		m["pregnancy_status"] = string(*rec.PregnancyStatus)
	}
	if rec.TechnicianID != nil {
		m["technician_id"] = rec.TechnicianID.String()
	}
	return m
}

// propagate rewrites the dam's breeding summary from one record.
func (s *Service) propagate(ctx context.Context, rec domain.BreedingRecord) error {
	status := domain.DeriveBreedingStatus(rec.Status, rec.PregnancyStatus)
	return s.cattle.UpdateBreedingSummary(ctx, rec.CattleID, status, rec.BreedingDate, rec.ExpectedDate)
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
