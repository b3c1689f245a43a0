// Package cattle implements the cattle repository using PostgreSQL.
package cattle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres"
	"github.com/farmstack/dairytrack-backend/internal/domain"
)

const table = "cattle"

var columns = []string{
	"id", "tag_number", "name", "breed", "date_of_birth", "gender",
	"current_weight", "assigned_worker", "status", "notes",
	"health_status", "last_checkup", "next_checkup",
	"breeding_status", "last_breeding_date", "expected_delivery_date",
	"created_at", "updated_at",
}

// Repo provides cattle persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cattle repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new animal and returns the persisted row. The denormalized
// health/breeding fields take their defaults (healthy, open); only the
// health/breeding repositories ever write them afterwards.
func (r *Repo) Create(ctx context.Context, c domain.Cattle) (domain.Cattle, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "tag_number", "name", "breed", "date_of_birth", "gender",
			"current_weight", "assigned_worker", "status", "notes").
		Values(c.ID, c.TagNumber, c.Name, c.Breed, c.DateOfBirth, string(c.Gender),
			c.CurrentWeight, c.AssignedWorker, string(c.Status), c.Notes).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("build cattle insert: %w", err)
	}

	var row cattleRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Cattle{}, postgres.MapError(err, "cattle", c.ID)
	}

	return row.toDomain(), nil
}

// Update rewrites the caller-owned fields of an animal. The denormalized
// health/breeding fields are left untouched.
func (r *Repo) Update(ctx context.Context, c domain.Cattle) (domain.Cattle, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("tag_number", c.TagNumber).
		Set("name", c.Name).
		Set("breed", c.Breed).
		Set("date_of_birth", c.DateOfBirth).
		Set("gender", string(c.Gender)).
		Set("current_weight", c.CurrentWeight).
		Set("assigned_worker", c.AssignedWorker).
		Set("status", string(c.Status)).
		Set("notes", c.Notes).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("build cattle update: %w", err)
	}

	var row cattleRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Cattle{}, postgres.MapError(err, "cattle", c.ID)
	}

	return row.toDomain(), nil
}

// UpdateHealthSummary rewrites the denormalized health mirror on an animal.
// Called only from the health record mutation transaction.
func (r *Repo) UpdateHealthSummary(ctx context.Context, id uuid.UUID, status domain.HealthStatus, lastCheckup time.Time, nextCheckup *time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("health_status", string(status)).
		Set("last_checkup", lastCheckup).
		Set("next_checkup", nextCheckup).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cattle health summary update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "cattle", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cattle %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateBreedingSummary rewrites the denormalized breeding mirror on an
// animal. Called only from the breeding record mutation transaction.
func (r *Repo) UpdateBreedingSummary(ctx context.Context, id uuid.UUID, status domain.BreedingStatus, lastBreedingDate time.Time, expectedDeliveryDate time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("breeding_status", string(status)).
		Set("last_breeding_date", lastBreedingDate).
		Set("expected_delivery_date", expectedDeliveryDate).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cattle breeding summary update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "cattle", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cattle %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an animal. Dependent health/breeding records cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cattle delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "cattle", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cattle %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one animal by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Cattle, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Cattle{}, fmt.Errorf("build cattle select: %w", err)
	}

	var row cattleRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Cattle{}, postgres.MapError(err, "cattle", id)
	}

	return row.toDomain(), nil
}

// ExistsByTagNumber reports whether any animal other than excludeID carries
// the given tag number. Pass uuid.Nil to check against the whole herd.
func (r *Repo) ExistsByTagNumber(ctx context.Context, tagNumber string, excludeID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"tag_number": tagNumber})
	if excludeID != uuid.Nil {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := builder.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build cattle tag exists: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("cattle tag exists: %w", err)
	}
	return exists, nil
}

// List returns animals matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.CattleFilter) ([]domain.Cattle, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"tag_number": pattern},
			squirrel.ILike{"name": pattern},
		})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Gender != nil {
		builder = builder.Where(squirrel.Eq{"gender": string(*filter.Gender)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cattle list: %w", err)
	}

	var rows []cattleRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list cattle: %w", err)
	}

	out := make([]domain.Cattle, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type cattleRow struct {
	ID                   uuid.UUID  `db:"id"`
	TagNumber            string     `db:"tag_number"`
	Name                 *string    `db:"name"`
	Breed                string     `db:"breed"`
	DateOfBirth          time.Time  `db:"date_of_birth"`
	Gender               string     `db:"gender"`
	CurrentWeight        *float64   `db:"current_weight"`
	AssignedWorker       *uuid.UUID `db:"assigned_worker"`
	Status               string     `db:"status"`
	Notes                *string    `db:"notes"`
	HealthStatus         string     `db:"health_status"`
	LastCheckup          *time.Time `db:"last_checkup"`
	NextCheckup          *time.Time `db:"next_checkup"`
	BreedingStatus       string     `db:"breeding_status"`
	LastBreedingDate     *time.Time `db:"last_breeding_date"`
	ExpectedDeliveryDate *time.Time `db:"expected_delivery_date"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

func (row cattleRow) toDomain() domain.Cattle {
	return domain.Cattle{
		ID:                   row.ID,
		TagNumber:            row.TagNumber,
		Name:                 row.Name,
		Breed:                row.Breed,
		DateOfBirth:          row.DateOfBirth,
		Gender:               domain.Gender(row.Gender),
		CurrentWeight:        row.CurrentWeight,
		AssignedWorker:       row.AssignedWorker,
		Status:               domain.CattleStatus(row.Status),
		Notes:                row.Notes,
		HealthStatus:         domain.HealthStatus(row.HealthStatus),
		LastCheckup:          row.LastCheckup,
		NextCheckup:          row.NextCheckup,
		BreedingStatus:       domain.BreedingStatus(row.BreedingStatus),
		LastBreedingDate:     row.LastBreedingDate,
		ExpectedDeliveryDate: row.ExpectedDeliveryDate,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}
