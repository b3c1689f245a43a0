package cattle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Get returns one animal by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Cattle, error) {
	if _, err := requireActor(ctx); err != nil {
		return domain.Cattle{}, err
	}
	if id == uuid.Nil {
		return domain.Cattle{}, domain.NewValidationError("id", "required")
	}
	return s.cattle.GetByID(ctx, id)
}

// List returns animals matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	filter.Limit = s.clampLimit(filter.Limit)

	items, err := s.cattle.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list cattle: %w", err)
	}
	return items, nil
}

// History returns the audit trail of one animal, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeCattle, id, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load cattle history: %w", err)
	}
	return records, nil
}
