package authsvc

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstack/dairytrack-backend/internal/domain"
	"github.com/farmstack/dairytrack-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type userRepoMock struct {
	lastLoginCalls []time.Time

	GetByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *userRepoMock) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.lastLoginCalls = append(m.lastLoginCalls, at)
	return nil
}

type auditRepoMock struct {
	records []domain.AuditRecord
}

func (m *auditRepoMock) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	m.records = append(m.records, record)
	return record, nil
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type tokenIssuerMock struct {
	issued []uuid.UUID
}

func (m *tokenIssuerMock) GenerateAccessToken(userID uuid.UUID, role, name string) (string, error) {
	m.issued = append(m.issued, userID)
	return "signed.jwt.token", nil
}

type verifierMock struct {
	ok bool
}

func (m *verifierMock) Verify(hash, password string) bool { return m.ok }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var loginAt = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

func activeUser() domain.User {
	return domain.User{
		ID:           uuid.New(),
		FullName:     "Grace Wanjiru",
		Username:     "grace.wanjiru",
		Email:        "grace.wanjiru@farm.co.ke",
		PhoneNumber:  "+254712345678",
		PasswordHash: "$2a$10$existing",
		Role:         domain.RoleManager,
		Status:       domain.AccountStatusActive,
	}
}

func newTestService(users *userRepoMock, audit *auditRepoMock, tx *txManagerMock, verifierOK bool) (*Service, *tokenIssuerMock) {
	issuer := &tokenIssuerMock{}
	svc := NewService(slog.Default(), users, audit, tx, issuer, &verifierMock{ok: verifierOK})
	svc.now = func() time.Time { return loginAt }
	return svc, issuer
}

func originCtx() context.Context {
	return ctxutil.WithOrigin(context.Background(), domain.Origin{IPAddress: "10.0.0.9", UserAgent: "test-agent"})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	user := activeUser()
	users := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) {
			assert.Equal(t, "grace.wanjiru", username, "username is trimmed before lookup")
			return user, nil
		},
	}
	audit := &auditRepoMock{}
	tx := &txManagerMock{}
	svc, issuer := newTestService(users, audit, tx, true)

	result, err := svc.Login(originCtx(), LoginInput{Username: "  grace.wanjiru  ", Password: "correct-horse"})
	require.NoError(t, err)

	assert.Equal(t, "signed.jwt.token", result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	require.NotNil(t, result.User.LastLogin)
	assert.True(t, result.User.LastLogin.Equal(loginAt))

	assert.Equal(t, []uuid.UUID{user.ID}, issuer.issued)
	assert.Equal(t, []time.Time{loginAt}, users.lastLoginCalls)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, domain.AuditActionLogin, rec.Action)
	assert.Equal(t, domain.EntityTypeUser, rec.EntityType)
	require.NotNil(t, rec.UserID)
	assert.Equal(t, user.ID, *rec.UserID)
	assert.Nil(t, rec.OldValues)
	assert.Nil(t, rec.NewValues)
	assert.Equal(t, "10.0.0.9", rec.IPAddress)
	assert.Equal(t, "test-agent", rec.UserAgent)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc, issuer := newTestService(users, &auditRepoMock{}, &txManagerMock{}, true)

	_, err := svc.Login(originCtx(), LoginInput{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "unknown user looks the same as a bad password")
	assert.Empty(t, issuer.issued)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	user := activeUser()
	users := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) { return user, nil },
	}
	audit := &auditRepoMock{}
	tx := &txManagerMock{}
	svc, issuer := newTestService(users, audit, tx, false)

	_, err := svc.Login(originCtx(), LoginInput{Username: "grace.wanjiru", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, issuer.issued)
	assert.Empty(t, audit.records, "failed attempts are not written to the trail")
	assert.Equal(t, 0, tx.calls)
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()

	user := activeUser()
	user.Status = domain.AccountStatusInactive
	users := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) { return user, nil },
	}
	svc, issuer := newTestService(users, &auditRepoMock{}, &txManagerMock{}, true)

	_, err := svc.Login(originCtx(), LoginInput{Username: "grace.wanjiru", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "right credentials, deactivated account")
	assert.Empty(t, issuer.issued)
}

func TestLogin_CollectsAllValidationErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(&userRepoMock{}, &auditRepoMock{}, &txManagerMock{}, true)

	_, err := svc.Login(originCtx(), LoginInput{Username: "   ", Password: ""})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
}
