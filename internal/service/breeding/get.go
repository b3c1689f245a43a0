package breeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Get returns one breeding record by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return domain.BreedingRecord{}, err
	}
	if id == uuid.Nil {
		return domain.BreedingRecord{}, domain.NewValidationError("id", "required")
	}
	return s.records.GetByID(ctx, id)
}

// List returns breeding records matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.BreedingRecordFilter) ([]domain.BreedingRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	filter.Limit = s.clampLimit(filter.Limit)

	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list breeding records: %w", err)
	}
	return records, nil
}

// History returns the audit trail of one breeding record, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeBreedingRecord, id, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load breeding record history: %w", err)
	}
	return records, nil
}
