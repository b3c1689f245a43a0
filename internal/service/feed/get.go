package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Get returns one feed item by ID. The stored stock status is stale once
// the expiry date passes between writes, so reads re-derive it.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Feed, error) {
	if _, err := requireActor(ctx); err != nil {
		return domain.Feed{}, err
	}
	if id == uuid.Nil {
		return domain.Feed{}, domain.NewValidationError("id", "required")
	}

	item, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		return domain.Feed{}, err
	}
	item.Status = domain.DeriveStockStatus(item.CurrentQuantity, item.ReorderLevel, item.ExpiryDate, s.now())
	return item, nil
}

// List returns feed items matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.FeedFilter) ([]domain.Feed, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	filter.Limit = s.clampLimit(filter.Limit)

	items, err := s.feeds.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	now := s.now()
	for i := range items {
		items[i].Status = domain.DeriveStockStatus(items[i].CurrentQuantity, items[i].ReorderLevel, items[i].ExpiryDate, now)
	}
	return items, nil
}

// Ledger returns the stock ledger of one feed item, newest first.
func (s *Service) Ledger(ctx context.Context, feedID uuid.UUID, limit, offset int) ([]domain.FeedTransaction, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if feedID == uuid.Nil {
		return nil, domain.NewValidationError("feed_id", "required")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must be non-negative")
	}

	entries, err := s.feeds.ListTransactions(ctx, feedID, s.clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list feed transactions: %w", err)
	}
	return entries, nil
}

// History returns the audit trail of one feed item, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeFeed, id, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load feed history: %w", err)
	}
	return records, nil
}
