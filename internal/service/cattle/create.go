package cattle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Create registers a new animal in the herd.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Cattle, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Cattle{}, err
	}

	if err := input.Validate(s.now()); err != nil {
		return domain.Cattle{}, err
	}

	tagNumber := strings.TrimSpace(input.TagNumber)
	taken, err := s.cattle.ExistsByTagNumber(ctx, tagNumber, uuid.Nil)
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("check tag number: %w", err)
	}
	if taken {
		return domain.Cattle{}, fmt.Errorf("tag number %q: %w", tagNumber, domain.ErrAlreadyExists)
	}

	dob, _ := domain.ParseDate(input.DateOfBirth)
	status := input.Status
	if status == "" {
		status = domain.CattleStatusActive
	}

	var created domain.Cattle
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.cattle.Create(txCtx, domain.Cattle{
			ID:             uuid.New(),
			TagNumber:      tagNumber,
			Name:           input.Name,
			Breed:          strings.TrimSpace(input.Breed),
			DateOfBirth:    dob,
			Gender:         input.Gender,
			CurrentWeight:  input.CurrentWeight,
			AssignedWorker: input.AssignedWorker,
			Status:         status,
			Notes:          input.Notes,
		})
		if createErr != nil {
			return fmt.Errorf("create cattle: %w", createErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionCreate, created.ID, nil, snapshot(created))); auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Cattle{}, txErr
	}

	s.log.InfoContext(ctx, "cattle created",
		slog.String("cattle_id", created.ID.String()),
		slog.String("tag_number", created.TagNumber),
		slog.String("actor_id", actor.ID.String()),
	)

	return created, nil
}
