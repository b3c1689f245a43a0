package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// Create hires a worker: the user account and the employment record are
// written in one transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Worker, error) {
	actor, err := s.authorize(ctx)
	if err != nil {
		return domain.Worker{}, err
	}

	if err := input.Validate(s.cfg.MinPasswordLength); err != nil {
		return domain.Worker{}, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := domain.UsernameFromEmail(email)

	if err := s.checkUnique(ctx, email, username, input.IDNumber, uuid.Nil, uuid.Nil); err != nil {
		return domain.Worker{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("hash password: %w", err)
	}

	dateHired, _ := domain.ParseDate(input.DateHired)

	var created domain.Worker
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		account, userErr := s.users.Create(txCtx, domain.User{
			ID:           uuid.New(),
			FullName:     strings.TrimSpace(input.FullName),
			Username:     username,
			Email:        email,
			PhoneNumber:  input.PhoneNumber,
			PasswordHash: hash,
			Role:         input.Role,
			Status:       domain.AccountStatusActive,
		})
		if userErr != nil {
			return fmt.Errorf("create user account: %w", userErr)
		}

		var workerErr error
		created, workerErr = s.workers.Create(txCtx, domain.Worker{
			ID:             uuid.New(),
			UserID:         account.ID,
			IDNumber:       input.IDNumber,
			DateHired:      dateHired,
			AssignedDuties: input.AssignedDuties,
			Salary:         input.Salary,
		})
		if workerErr != nil {
			return fmt.Errorf("create worker record: %w", workerErr)
		}

		if _, auditErr := s.audit.Create(txCtx, auditRecord(txCtx, actor, domain.AuditActionCreate, created.ID, nil, snapshot(created))); auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return domain.Worker{}, txErr
	}

	s.log.InfoContext(ctx, "worker created",
		slog.String("worker_id", created.ID.String()),
		slog.String("username", username),
		slog.String("role", string(input.Role)),
		slog.String("actor_id", actor.ID.String()),
	)

	return created, nil
}
