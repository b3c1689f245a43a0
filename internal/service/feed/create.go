package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Create adds a feed item. The opening quantity is booked as an
// initial_stock ledger row in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Feed, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Feed{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Feed{}, err
	}

	expiry, _ := domain.ParseDate(input.ExpiryDate)
	status := domain.DeriveStockStatus(input.CurrentQuantity, input.ReorderLevel, expiry, s.now())

	var created domain.Feed
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.feeds.Create(txCtx, domain.Feed{
			ID:              uuid.New(),
			Name:            strings.TrimSpace(input.Name),
			Type:            input.Type,
			Description:     input.Description,
			Supplier:        input.Supplier,
			UnitOfMeasure:   input.UnitOfMeasure,
			UnitCost:        input.UnitCost,
			CurrentQuantity: input.CurrentQuantity,
			ReorderLevel:    input.ReorderLevel,
			ExpiryDate:      expiry,
			StorageLocation: input.StorageLocation,
			Status:          status,
			Notes:           input.Notes,
		})
		if createErr != nil {
			return fmt.Errorf("create feed: %w", createErr)
		}

		if created.CurrentQuantity > 0 {
			if _, ledgerErr := s.feeds.CreateTransaction(txCtx, domain.FeedTransaction{
				ID:        uuid.New(),
				FeedID:    created.ID,
				Type:      domain.FeedTxInitialStock,
				Quantity:  created.CurrentQuantity,
				UnitCost:  created.UnitCost,
				TotalCost: created.CurrentQuantity * created.UnitCost,
			}); ledgerErr != nil {
				return fmt.Errorf("book initial stock: %w", ledgerErr)
			}
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionCreate, created.ID, nil, snapshot(created))); auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Feed{}, txErr
	}

	s.log.InfoContext(ctx, "feed created",
		slog.String("feed_id", created.ID.String()),
		slog.String("feed_name", created.Name),
		slog.String("status", string(created.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	return created, nil
}
