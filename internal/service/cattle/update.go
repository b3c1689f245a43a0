package cattle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Update edits an animal. The denormalized health and breeding columns are
// left exactly as the latest health/breeding mutations wrote them.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Cattle, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Cattle{}, err
	}

	if err := input.Validate(s.now()); err != nil {
		return domain.Cattle{}, err
	}

	existing, err := s.cattle.GetByID(ctx, input.ID)
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("load cattle: %w", err)
	}

	tagNumber := strings.TrimSpace(input.TagNumber)
	taken, err := s.cattle.ExistsByTagNumber(ctx, tagNumber, input.ID)
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("check tag number: %w", err)
	}
	if taken {
		return domain.Cattle{}, fmt.Errorf("tag number %q: %w", tagNumber, domain.ErrAlreadyExists)
	}

	dob, _ := domain.ParseDate(input.DateOfBirth)
	status := input.Status
	if status == "" {
		status = existing.Status
	}

	next := existing
	next.TagNumber = tagNumber
	next.Name = input.Name
	next.Breed = strings.TrimSpace(input.Breed)
	next.DateOfBirth = dob
	next.Gender = input.Gender
	next.CurrentWeight = input.CurrentWeight
	next.AssignedWorker = input.AssignedWorker
	next.Status = status
	next.Notes = input.Notes

	var updated domain.Cattle
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.cattle.Update(txCtx, next)
		if updateErr != nil {
			return fmt.Errorf("update cattle: %w", updateErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionUpdate, updated.ID, snapshot(existing), snapshot(updated))); auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Cattle{}, txErr
	}

	s.log.InfoContext(ctx, "cattle updated",
		slog.String("cattle_id", updated.ID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	return updated, nil
}
