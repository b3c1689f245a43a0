package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Delete removes the employment record. The user account survives so audit
// entries authored by this person stay attributable.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.workers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load worker: %w", err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.workers.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete worker record: %w", deleteErr)
		}
		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionDelete, id, snapshot(existing), nil)); auditErr != nil {
			return fmt.Errorf("audit delete: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "worker deleted",
		slog.String("worker_id", id.String()),
		slog.String("id_number", existing.IDNumber),
		slog.String("actor_id", actor.ID.String()),
	)

	return nil
}
