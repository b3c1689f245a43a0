package breeding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Delete removes a breeding record. The dam's summary keeps its last
// written value.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.records.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load breeding record: %w", err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.records.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete breeding record: %w", deleteErr)
		}
		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionDelete, id, snapshot(existing), nil)); auditErr != nil {
			return fmt.Errorf("audit delete: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "breeding record deleted",
		slog.String("record_id", id.String()),
		slog.String("cattle_id", existing.CattleID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	return nil
}
