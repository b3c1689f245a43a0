package authsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// LoginInput holds the login form fields.
type LoginInput struct {
	Username string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Login authenticates a user with username + password and issues an access
// token. Returns ErrUnauthorized for an unknown username or a wrong
// password, without telling which; ErrForbidden for a deactivated account.
func (s *Service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, domain.ErrUnauthorized
		}
		return LoginResult{}, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		return LoginResult{}, domain.ErrUnauthorized
	}

	if user.Status != domain.AccountStatusActive {
		return LoginResult{}, domain.ErrForbidden
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, string(user.Role), user.FullName)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	loginAt := s.now()
	origin := ctxutil.OriginFromCtx(ctx)
	userID := user.ID

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.users.UpdateLastLogin(txCtx, user.ID, loginAt); updateErr != nil {
			return fmt.Errorf("update last login: %w", updateErr)
		}
		if _, auditErr := s.audit.Create(txCtx, domain.AuditRecord{
			UserID:     &userID,
			Action:     domain.AuditActionLogin,
			EntityType: domain.EntityTypeUser,
			EntityID:   &userID,
			IPAddress:  origin.IPAddress,
			UserAgent:  origin.UserAgent,
		}); auditErr != nil {
			return fmt.Errorf("audit login: %w", auditErr)
		}
		return nil
	})
	if txErr != nil {
		return LoginResult{}, txErr
	}

	user.LastLogin = &loginAt

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return LoginResult{Token: token, User: user}, nil
}
