package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Update edits both halves of the aggregate in one transaction. The
// username stays as derived at hire time even when the email changes, so
// logins keep working.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Worker, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Worker{}, err
	}

	if err := input.Validate(s.cfg.MinPasswordLength); err != nil {
		return domain.Worker{}, err
	}

	existing, err := s.workers.GetByID(ctx, input.ID)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("load worker: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.checkUnique(ctx, email, existing.User.Username, input.IDNumber, existing.UserID, existing.ID); err != nil {
		return domain.Worker{}, err
	}

	account := *existing.User
	account.FullName = strings.TrimSpace(input.FullName)
	account.Email = email
	account.PhoneNumber = input.PhoneNumber
	account.Role = input.Role
	account.Status = input.Status
	if input.Password != nil {
		hash, hashErr := s.hasher.Hash(*input.Password)
		if hashErr != nil {
			return domain.Worker{}, fmt.Errorf("hash password: %w", hashErr)
		}
		account.PasswordHash = hash
	}

	dateHired, _ := domain.ParseDate(input.DateHired)

	record := existing
	record.IDNumber = input.IDNumber
	record.DateHired = dateHired
	record.AssignedDuties = input.AssignedDuties
	record.Salary = input.Salary

	var updated domain.Worker
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, userErr := s.users.Update(txCtx, account); userErr != nil {
			return fmt.Errorf("update user account: %w", userErr)
		}

		var workerErr error
		updated, workerErr = s.workers.Update(txCtx, record)
		if workerErr != nil {
			return fmt.Errorf("update worker record: %w", workerErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionUpdate, updated.ID, snapshot(existing), snapshot(updated))); auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Worker{}, txErr
	}

	s.log.InfoContext(ctx, "worker updated",
		slog.String("worker_id", updated.ID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	return updated, nil
}
