package cattle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Delete removes an animal and its dependent health and breeding records.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.cattle.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load cattle: %w", err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.cattle.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete cattle: %w", deleteErr)
		}
		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionDelete, id, snapshot(existing), nil)); auditErr != nil {
			return fmt.Errorf("audit delete: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "cattle deleted",
		slog.String("cattle_id", id.String()),
		slog.String("tag_number", existing.TagNumber),
		slog.String("actor_id", actor.ID.String()),
	)

	return nil
}
