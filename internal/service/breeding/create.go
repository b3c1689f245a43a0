package breeding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Create records a breeding event and rewrites the dam's breeding summary
// in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.BreedingRecord, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.BreedingRecord{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.BreedingRecord{}, err
	}

	// Resolve the dam up front so a bad reference fails before the tx.
	if _, err := s.cattle.GetByID(ctx, input.CattleID); err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("load cattle: %w", err)
	}

	breedingDate, _ := domain.ParseDate(input.BreedingDate)

	var created domain.BreedingRecord
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.records.Create(txCtx, domain.BreedingRecord{
			ID:              uuid.New(),
			CattleID:        input.CattleID,
			BreedingDate:    breedingDate,
			BreedingType:    input.BreedingType,
			SireDetails:     input.SireDetails,
			SemenBatch:      input.SemenBatch,
			TechnicianID:    input.TechnicianID,
			BreedingCost:    input.BreedingCost,
			Status:          input.Status,
			PregnancyStatus: input.PregnancyStatus,
			ExpectedDate:    domain.ExpectedDeliveryDate(breedingDate),
			Notes:           input.Notes,
		})
		if createErr != nil {
			return fmt.Errorf("create breeding record: %w", createErr)
		}

		if propErr := s.propagate(txCtx, created); propErr != nil {
			return fmt.Errorf("update breeding summary: %w", propErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionCreate, created.ID, nil, snapshot(created))); auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.BreedingRecord{}, txErr
	}

	s.log.InfoContext(ctx, "breeding record created",
		slog.String("record_id", created.ID.String()),
		slog.String("cattle_id", created.CattleID.String()),
		slog.String("status", string(created.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	return created, nil
}
