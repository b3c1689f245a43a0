package health

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Update edits a health record and rewrites the animal's health summary in
// the same transaction.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.HealthRecord, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.HealthRecord{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.HealthRecord{}, err
	}

	existing, err := s.records.GetByID(ctx, input.ID)
	if err != nil {
		return domain.HealthRecord{}, fmt.Errorf("load health record: %w", err)
	}

	checkup, next := parseDates(input.DateOfCheckup, input.NextCheckupDate)

	rec := existing
	rec.DateOfCheckup = checkup
	rec.HealthIssue = input.HealthIssue
	rec.Symptoms = input.Symptoms
	rec.Diagnosis = input.Diagnosis
	rec.TreatmentGiven = input.TreatmentGiven
	rec.TreatmentCost = input.TreatmentCost
	rec.Medications = input.Medications
	rec.NextCheckupDate = next
	rec.AttendedBy = input.AttendedBy
	rec.Notes = input.Notes
	rec.Status = input.Status

	var updated domain.HealthRecord
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.records.Update(txCtx, rec)
		if updateErr != nil {
			return fmt.Errorf("update health record: %w", updateErr)
		}

		if propErr := s.propagate(txCtx, updated); propErr != nil {
			return fmt.Errorf("update health summary: %w", propErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionUpdate, updated.ID, snapshot(existing), snapshot(updated))); auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.HealthRecord{}, txErr
	}

	s.log.InfoContext(ctx, "health record updated",
		slog.String("record_id", updated.ID.String()),
		slog.String("cattle_id", updated.CattleID.String()),
		slog.String("status", string(updated.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	return updated, nil
}
