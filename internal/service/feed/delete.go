package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Delete removes a feed item. Its ledger rows go with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load feed: %w", err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.feeds.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete feed: %w", deleteErr)
		}
		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionDelete, id, snapshot(existing), nil)); auditErr != nil {
			return fmt.Errorf("audit delete: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "feed deleted",
		slog.String("feed_id", id.String()),
		slog.String("feed_name", existing.Name),
		slog.String("actor_id", actor.ID.String()),
	)

	return nil
}
