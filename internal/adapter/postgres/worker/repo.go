// Package worker implements the worker repository using PostgreSQL.
// A worker is a two-table aggregate: the employment row here plus a users
// row written through the user repository in the same transaction. Reads
// join the account so callers get the full picture.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres"
	"github.com/farmstack/dairytrack-backend/internal/domain"
)

const table = "workers"

// joinedColumns selects the workers row plus the joined users account.
var joinedColumns = []string{
	"w.id", "w.user_id", "w.id_number", "w.date_hired", "w.assigned_duties",
	"w.salary", "w.created_at", "w.updated_at",
	`u.full_name AS user_full_name`, `u.username AS user_username`,
	`u.email AS user_email`, `u.phone_number AS user_phone_number`,
	`u.role AS user_role`, `u.status AS user_status`,
	`u.last_login AS user_last_login`,
}

// Repo provides worker persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new worker repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the workers row of the aggregate. The users row must
// already exist in the same transaction.
func (r *Repo) Create(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "id_number", "date_hired", "assigned_duties", "salary").
		Values(w.ID, w.UserID, w.IDNumber, w.DateHired, w.AssignedDuties, w.Salary).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Worker{}, fmt.Errorf("build worker insert: %w", err)
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return domain.Worker{}, postgres.MapError(err, "worker", w.ID)
	}

	return r.GetByID(ctx, id)
}

// Update rewrites the employment fields of a worker.
func (r *Repo) Update(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("id_number", w.IDNumber).
		Set("date_hired", w.DateHired).
		Set("assigned_duties", w.AssignedDuties).
		Set("salary", w.Salary).
		Where(squirrel.Eq{"id": w.ID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Worker{}, fmt.Errorf("build worker update: %w", err)
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return domain.Worker{}, postgres.MapError(err, "worker", w.ID)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the workers row. The user account stays so past audit
// entries keep their author.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build worker delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "worker", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one worker with the joined user account.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(joinedColumns...).
		From(table + " w").
		Join("users u ON u.id = w.user_id").
		Where(squirrel.Eq{"w.id": id}).
		ToSql()
	if err != nil {
		return domain.Worker{}, fmt.Errorf("build worker select: %w", err)
	}

	var row workerRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Worker{}, postgres.MapError(err, "worker", id)
	}

	return row.toDomain(), nil
}

// ExistsByIDNumber reports whether any worker other than excludeID carries
// the given national ID number. Pass uuid.Nil to check against all workers.
func (r *Repo) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"id_number": idNumber})
	if excludeID != uuid.Nil {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := builder.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build worker id_number exists: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("worker id_number exists: %w", err)
	}
	return exists, nil
}

// List returns workers matching the filter, newest hire first.
func (r *Repo) List(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(joinedColumns...).
		From(table + " w").
		Join("users u ON u.id = w.user_id").
		OrderBy("w.date_hired DESC", "w.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.full_name": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"w.id_number": pattern},
		})
	}
	if filter.Role != nil {
		builder = builder.Where(squirrel.Eq{"u.role": string(*filter.Role)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"u.status": string(*filter.Status)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build worker list: %w", err)
	}

	var rows []workerRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	out := make([]domain.Worker, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type workerRow struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	IDNumber       string    `db:"id_number"`
	DateHired      time.Time `db:"date_hired"`
	AssignedDuties *string   `db:"assigned_duties"`
	Salary         float64   `db:"salary"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	UserFullName    string     `db:"user_full_name"`
	UserUsername    string     `db:"user_username"`
	UserEmail       string     `db:"user_email"`
	UserPhoneNumber string     `db:"user_phone_number"`
	UserRole        string     `db:"user_role"`
	UserStatus      string     `db:"user_status"`
	UserLastLogin   *time.Time `db:"user_last_login"`
}

func (row workerRow) toDomain() domain.Worker {
	return domain.Worker{
		ID:             row.ID,
		UserID:         row.UserID,
		IDNumber:       row.IDNumber,
		DateHired:      row.DateHired,
		AssignedDuties: row.AssignedDuties,
		Salary:         row.Salary,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		User: &domain.User{
			ID:          row.UserID,
			FullName:    row.UserFullName,
			Username:    row.UserUsername,
			Email:       row.UserEmail,
			PhoneNumber: row.UserPhoneNumber,
			Role:        domain.Role(row.UserRole),
			Status:      domain.AccountStatus(row.UserStatus),
			LastLogin:   row.UserLastLogin,
		},
	}
}
