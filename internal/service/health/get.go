package health

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Get returns one health record by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.HealthRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return domain.HealthRecord{}, err
	}
	if id == uuid.Nil {
		return domain.HealthRecord{}, domain.NewValidationError("id", "required")
	}
	return s.records.GetByID(ctx, id)
}

// List returns health records matching the filter, newest checkup first.
func (s *Service) List(ctx context.Context, filter domain.HealthRecordFilter) ([]domain.HealthRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	filter.Limit = s.clampLimit(filter.Limit)

	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return records, nil
}

// History returns the audit trail of one health record, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeHealthRecord, id, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load health record history: %w", err)
	}
	return records, nil
}
