package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres/testhelper"
	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres/user"
	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func newUser() domain.User {
	suffix := uuid.New().String()[:8]
	return domain.User{
		ID:           uuid.New(),
		FullName:     "Jane Wanjiku",
		Username:     "jane-" + suffix,
		Email:        "jane-" + suffix + "@example.com",
		PhoneNumber:  "+254712345678",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealha",
		Role:         domain.RoleManager,
		Status:       domain.AccountStatusActive,
	}
}

func TestRepo_Create_AndGetByUsername(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	input := newUser()
	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.Username != input.Username {
		t.Errorf("Username mismatch: got %q", created.Username)
	}
	if created.LastLogin != nil {
		t.Errorf("expected nil LastLogin, got %v", created.LastLogin)
	}

	got, err := repo.GetByUsername(ctx, input.Username)
	if err != nil {
		t.Fatalf("GetByUsername: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s", got.ID)
	}
	if got.PasswordHash != input.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q", got.PasswordHash)
	}
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	first := newUser()
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create: unexpected error: %v", err)
	}

	second := newUser()
	second.Email = first.Email
	_, err := repo.Create(ctx, second)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for duplicate email, got: %v", err)
	}
}

func TestRepo_GetByUsername_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByUsername(context.Background(), "no-such-user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser())
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	created.FullName = "Jane W. Kamau"
	created.Status = domain.AccountStatusInactive
	created.PasswordHash = "$2a$04$anotherhashanotherhashanotherhashanotherhashan"

	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.FullName != "Jane W. Kamau" {
		t.Errorf("FullName not updated: got %q", updated.FullName)
	}
	if updated.Status != domain.AccountStatusInactive {
		t.Errorf("Status not updated: got %s", updated.Status)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Errorf("PasswordHash not updated")
	}
}

func TestRepo_UpdateLastLogin(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser())
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatalf("UpdateLastLogin: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Errorf("LastLogin mismatch: got %v, want %s", got.LastLogin, at)
	}
}

func TestRepo_ExistsByEmail_ExcludesSelf(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser())
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, created.Email, uuid.Nil)
	if err != nil {
		t.Fatalf("ExistsByEmail: unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}

	exists, err = repo.ExistsByEmail(ctx, created.Email, created.ID)
	if err != nil {
		t.Fatalf("ExistsByEmail with exclude: unexpected error: %v", err)
	}
	if exists {
		t.Error("expected email to be free when excluding its own account")
	}
}

func TestRepo_ExistsByUsername(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser())
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	exists, err := repo.ExistsByUsername(ctx, created.Username, uuid.Nil)
	if err != nil {
		t.Fatalf("ExistsByUsername: unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected username to exist")
	}

	exists, err = repo.ExistsByUsername(ctx, "free-"+uuid.New().String()[:8], uuid.Nil)
	if err != nil {
		t.Fatalf("ExistsByUsername free: unexpected error: %v", err)
	}
	if exists {
		t.Error("expected unknown username to be free")
	}
}
