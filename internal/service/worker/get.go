package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Get returns one worker with the joined account by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	if _, err := requireActor(ctx); err != nil {
		return domain.Worker{}, err
	}
	if id == uuid.Nil {
		return domain.Worker{}, domain.NewValidationError("id", "required")
	}
	return s.workers.GetByID(ctx, id)
}

// List returns workers matching the filter, most recently hired first.
func (s *Service) List(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	filter.Limit = s.clampLimit(filter.Limit)

	workers, err := s.workers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

// History returns the audit trail of one worker, newest first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.AuditRecord, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeWorker, id, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load worker history: %w", err)
	}
	return records, nil
}
