package health

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

type healthRepo interface {
	Create(ctx context.Context, rec domain.HealthRecord) (domain.HealthRecord, error)
	Update(ctx context.Context, rec domain.HealthRecord) (domain.HealthRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.HealthRecord, error)
	List(ctx context.Context, filter domain.HealthRecordFilter) ([]domain.HealthRecord, error)
}

type cattleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Cattle, error)
	UpdateHealthSummary(ctx context.Context, id uuid.UUID, status domain.HealthStatus, lastCheckup time.Time, nextCheckup *time.Time) error
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

// Service implements health record keeping. Every health mutation also
// rewrites the owning animal's denormalized health summary in the same
// transaction.
type Service struct {
	log     *slog.Logger
	records healthRepo
	cattle  cattleRepo
	audit   auditRepo
	tx      txManager
	cfg     config.FarmConfig
	now     func() time.Time
}

// NewService creates a new Health service.
func NewService(
	logger *slog.Logger,
	records healthRepo,
	cattle cattleRepo,
	audit auditRepo,
	tx txManager,
	cfg config.FarmConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "health"),
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
	if !domain.IsAllowed(domain.EntityTypeHealthRecord, actor.Role) {
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
		EntityType: domain.EntityTypeHealthRecord,
		EntityID:   &entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  origin.IPAddress,
		UserAgent:  origin.UserAgent,
	}
}

func snapshot(rec domain.HealthRecord) map[string]any {
	m := map[string]any{
		"cattle_id":       rec.CattleID.String(),
		"date_of_checkup": rec.DateOfCheckup.Format(domain.DateLayout),
		"health_issue":    rec.HealthIssue,
		"treatment_given": rec.TreatmentGiven,
		"treatment_cost":  rec.TreatmentCost,
		"status":          string(rec.Status),
	}
	if rec.Diagnosis != nil {
		m["diagnosis"] = *rec.Diagnosis
	}
	if rec.NextCheckupDate != nil {
		m["next_checkup_date"] = rec.NextCheckupDate.Format(domain.DateLayout)
	}
	return m
}

// propagate rewrites the animal's health summary from one record.
func (s *Service) propagate(ctx context.Context, rec domain.HealthRecord) error {
	return s.cattle.UpdateHealthSummary(ctx, rec.CattleID, domain.DeriveHealthStatus(rec.Status), rec.DateOfCheckup, rec.NextCheckupDate)
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
