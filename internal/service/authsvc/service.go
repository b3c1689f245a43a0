package authsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type auditRepo interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role, name string) (string, error)
}

type passwordVerifier interface {
	Verify(hash, password string) bool
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements authentication.
type Service struct {
	log    *slog.Logger
	users  userRepo
	audit  auditRepo
	tx     txManager
	jwt    tokenIssuer
	hasher passwordVerifier
	now    func() time.Time
}

// NewService creates a new Auth service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	audit auditRepo,
	tx txManager,
	jwt tokenIssuer,
	hasher passwordVerifier,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		audit:  audit,
		tx:     tx,
		jwt:    jwt,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token string
	User  domain.User
}
