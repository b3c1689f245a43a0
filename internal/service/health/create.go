package health

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Create records a checkup or treatment and rewrites the animal's health
// summary in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.HealthRecord, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.HealthRecord{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.HealthRecord{}, err
	}

	// Resolve the animal up front so a bad reference fails before the tx.
	if _, err := s.cattle.GetByID(ctx, input.CattleID); err != nil {
		return domain.HealthRecord{}, fmt.Errorf("load cattle: %w", err)
	}

	checkup, next := parseDates(input.DateOfCheckup, input.NextCheckupDate)

	var created domain.HealthRecord
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.records.Create(txCtx, domain.HealthRecord{
			ID:              uuid.New(),
			CattleID:        input.CattleID,
			DateOfCheckup:   checkup,
			HealthIssue:     input.HealthIssue,
			Symptoms:        input.Symptoms,
			Diagnosis:       input.Diagnosis,
			TreatmentGiven:  input.TreatmentGiven,
			TreatmentCost:   input.TreatmentCost,
			Medications:     input.Medications,
			NextCheckupDate: next,
			AttendedBy:      input.AttendedBy,
			Notes:           input.Notes,
			Status:          input.Status,
		})
		if createErr != nil {
			return fmt.Errorf("create health record: %w", createErr)
		}

		if propErr := s.propagate(txCtx, created); propErr != nil {
			return fmt.Errorf("update health summary: %w", propErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionCreate, created.ID, nil, snapshot(created))); auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.HealthRecord{}, txErr
	}

	s.log.InfoContext(ctx, "health record created",
		slog.String("record_id", created.ID.String()),
		slog.String("cattle_id", created.CattleID.String()),
		slog.String("status", string(created.Status)),
		slog.String("actor_id", actor.ID.String()),
	)

	return created, nil
}
