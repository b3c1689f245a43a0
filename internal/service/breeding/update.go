package breeding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Update edits a breeding record, recomputes the expected delivery date and
// rewrites the dam's breeding summary in the same transaction.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.BreedingRecord, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.BreedingRecord{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.BreedingRecord{}, err
	}

	existing, err := s.records.GetByID(ctx, input.ID)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("load breeding record: %w", err)
	}

	breedingDate, _ := domain.ParseDate(input.BreedingDate)

	rec := existing
	rec.BreedingDate = breedingDate
	rec.BreedingType = input.BreedingType
	rec.SireDetails = input.SireDetails
	rec.SemenBatch = input.SemenBatch
	rec.TechnicianID = input.TechnicianID
	rec.BreedingCost = input.BreedingCost
	rec.Status = input.Status
	rec.PregnancyStatus = input.PregnancyStatus
	rec.ExpectedDate = domain.ExpectedDeliveryDate(breedingDate)
	rec.Notes = input.Notes

	var updated domain.BreedingRecord
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.records.Update(txCtx, rec)
		if updateErr != nil {
			return fmt.Errorf("update breeding record: %w", updateErr)
		}

		if propErr := s.propagate(txCtx, updated); propErr != nil {
			return fmt.Errorf("update breeding summary: %w", propErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionUpdate, updated.ID, snapshot(existing), snapshot(updated))); auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.BreedingRecord{}, txErr
	}

	s.log.InfoContext(ctx, "breeding record updated",
		slog.String("record_id", updated.ID.String()),
		slog.String("cattle_id", updated.CattleID.String()),
		slog.String("status", string(updated.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	return updated, nil
}
