package worker

import (
	"context"
	"fmt"
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

type userRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
}

type workerRepo interface {
	Create(ctx context.Context, w domain.Worker) (domain.Worker, error)
	Update(ctx context.Context, w domain.Worker) (domain.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error)
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error)
}

type auditRepo interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements staff management. A worker is a two-table aggregate,
// the user account plus the employment record, always written in one
// transaction.
type Service struct {
	log     *slog.Logger
	users   userRepo
	workers workerRepo
	audit   auditRepo
	tx      txManager
	hasher  passwordHasher
	cfg     config.FarmConfig
	now     func() time.Time
}

// NewService creates a new Worker service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	workers workerRepo,
	audit auditRepo,
	tx txManager,
	hasher passwordHasher,
	cfg config.FarmConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "worker"),
		users:   users,
		workers: workers,
		audit:   audit,
		tx:      tx,
		hasher:  hasher,
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
	if !domain.IsAllowed(domain.EntityTypeWorker, actor.Role) {
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
		EntityType: domain.EntityTypeWorker,
		EntityID:   &entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  origin.IPAddress,
		UserAgent:  origin.UserAgent,
	}
}

// snapshot covers both halves of the aggregate.
func snapshot(w domain.Worker) map[string]any {
	m := map[string]any{
		"id_number":  w.IDNumber,
		"date_hired": w.DateHired.Format(domain.DateLayout),
		"salary":     w.Salary,
	}
	if w.User != nil {
		m["full_name"] = w.User.FullName
		m["email"] = w.User.Email
		m["phone_number"] = w.User.PhoneNumber
		m["role"] = string(w.User.Role)
		m["status"] = string(w.User.Status)
	}
	return m
}

// checkUnique runs the three uniqueness probes, excluding the given user
// and worker rows (uuid.Nil on create).
func (s *Service) checkUnique(ctx context.Context, email, username, idNumber string, excludeUserID, excludeWorkerID uuid.UUID) error {
	taken, err := s.users.ExistsByEmail(ctx, email, excludeUserID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return fmt.Errorf("email %q: %w", email, domain.ErrAlreadyExists)
	}

	taken, err = s.users.ExistsByUsername(ctx, username, excludeUserID)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return fmt.Errorf("username %q: %w", username, domain.ErrAlreadyExists)
	}

	taken, err = s.workers.ExistsByIDNumber(ctx, idNumber, excludeWorkerID)
	if err != nil {
		return fmt.Errorf("check id number: %w", err)
	}
	if taken {
		return fmt.Errorf("id number %q: %w", idNumber, domain.ErrAlreadyExists)
	}

	return nil
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
