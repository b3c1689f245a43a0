// Package user implements the user account repository using PostgreSQL.
// Worker mutations write users rows through this package inside the same
// transaction as the workers row; login reads and stamps accounts here.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres"
	"github.com/farmstack/dairytrack-backend/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "full_name", "username", "email", "phone_number", "password_hash",
	"role", "status", "last_login", "created_at", "updated_at",
}

// Repo provides user account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user account and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "full_name", "username", "email", "phone_number",
			"password_hash", "role", "status").
		Values(u.ID, u.FullName, u.Username, u.Email, u.PhoneNumber,
			u.PasswordHash, string(u.Role), string(u.Status)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build user insert: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.ID)
	}

	return row.toDomain(), nil
}

// Update rewrites the mutable account fields, password hash included.
func (r *Repo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("full_name", u.FullName).
		Set("username", u.Username).
		Set("email", u.Email).
		Set("phone_number", u.PhoneNumber).
		Set("password_hash", u.PasswordHash).
		Set("role", string(u.Role)).
		Set("status", string(u.Status)).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build user update: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.ID)
	}

	return row.toDomain(), nil
}

// UpdateLastLogin stamps a successful login.
func (r *Repo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("last_login", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build user last_login update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row, err := r.getBy(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return row.toDomain(), nil
}

// GetByUsername returns one user by username. Login path.
func (r *Repo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.getBy(ctx, squirrel.Eq{"username": username})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) getBy(ctx context.Context, where squirrel.Eq) (userRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return userRow{}, fmt.Errorf("build user select: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return userRow{}, err
	}
	return row, nil
}

// ExistsByEmail reports whether any account other than excludeID uses the
// given email. Pass uuid.Nil to check against all accounts.
func (r *Repo) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email}, excludeID)
}

// ExistsByUsername reports whether any account other than excludeID uses the
// given username.
func (r *Repo) ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username}, excludeID)
}

func (r *Repo) exists(ctx context.Context, where squirrel.Eq, excludeID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select("1").
		From(table).
		Where(where)
	if excludeID != uuid.Nil {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := builder.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build user exists: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type userRow struct {
	ID           uuid.UUID  `db:"id"`
	FullName     string     `db:"full_name"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PhoneNumber  string     `db:"phone_number"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Status       string     `db:"status"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (row userRow) toDomain() domain.User {
	return domain.User{
		ID:           row.ID,
		FullName:     row.FullName,
		Username:     row.Username,
		Email:        row.Email,
		PhoneNumber:  row.PhoneNumber,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		Status:       domain.AccountStatus(row.Status),
		LastLogin:    row.LastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
