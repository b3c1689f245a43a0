package feed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Update edits a feed item. A quantity change books one adjustment ledger
// row with the absolute delta, and stock status is re-derived.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Feed, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Feed{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Feed{}, err
	}

	existing, err := s.feeds.GetByID(ctx, input.ID)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("load feed: %w", err)
	}

	expiry, _ := domain.ParseDate(input.ExpiryDate)

	next := existing
	next.Name = strings.TrimSpace(input.Name)
	next.Type = input.Type
	next.Description = input.Description
	next.Supplier = input.Supplier
	next.UnitOfMeasure = input.UnitOfMeasure
	next.UnitCost = input.UnitCost
	next.CurrentQuantity = input.CurrentQuantity
	next.ReorderLevel = input.ReorderLevel
	next.ExpiryDate = expiry
	next.StorageLocation = input.StorageLocation
	next.Status = domain.DeriveStockStatus(input.CurrentQuantity, input.ReorderLevel, expiry, s.now())
	next.Notes = input.Notes

	delta := next.CurrentQuantity - existing.CurrentQuantity

	var updated domain.Feed
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.feeds.Update(txCtx, next)
		if updateErr != nil {
			return fmt.Errorf("update feed: %w", updateErr)
		}

		if delta != 0 {
			txType := domain.FeedTxAdjustmentAdd
			if delta < 0 {
				txType = domain.FeedTxAdjustmentSubtract
			}
			qty := math.Abs(delta)
			if _, ledgerErr := s.feeds.CreateTransaction(txCtx, domain.FeedTransaction{
				ID:        uuid.New(),
				FeedID:    updated.ID,
				Type:      txType,
				Quantity:  qty,
				UnitCost:  updated.UnitCost,
				TotalCost: qty * updated.UnitCost,
			}); ledgerErr != nil {
				return fmt.Errorf("book stock adjustment: %w", ledgerErr)
			}
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionUpdate, updated.ID, snapshot(existing), snapshot(updated))); auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Feed{}, txErr
	}

	s.log.InfoContext(ctx, "feed updated",
		slog.String("feed_id", updated.ID.String()),
		slog.String("status", string(updated.Status)),
		slog.Float64("quantity_delta", delta),
		slog.String("actor_id", actor.ID.String()),
	)

	return updated, nil
}
