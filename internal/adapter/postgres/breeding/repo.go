// Package breeding implements the breeding record repository using PostgreSQL.
package breeding

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

const table = "breeding_records"

var columns = []string{
	"id", "cattle_id", "breeding_date", "breeding_type", "sire_details",
	"semen_batch", "technician_id", "breeding_cost", "status",
	"pregnancy_status", "expected_date", "notes", "created_at", "updated_at",
}

// Repo provides breeding record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new breeding record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new breeding record and returns the persisted row.
func (r *Repo) Create(ctx context.Context, rec domain.BreedingRecord) (domain.BreedingRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "cattle_id", "breeding_date", "breeding_type", "sire_details",
			"semen_batch", "technician_id", "breeding_cost", "status",
			"pregnancy_status", "expected_date", "notes").
		Values(rec.ID, rec.CattleID, rec.BreedingDate, string(rec.BreedingType), rec.SireDetails,
			rec.SemenBatch, rec.TechnicianID, rec.BreedingCost, string(rec.Status),
			pregnancyStatusArg(rec.PregnancyStatus), rec.ExpectedDate, rec.Notes).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("build breeding_record insert: %w", err)
	}

	var row breedingRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.BreedingRecord{}, postgres.MapError(err, "breeding_record", rec.ID)
	}

	return row.toDomain(), nil
}

// Update rewrites all mutable fields of a breeding record.
func (r *Repo) Update(ctx context.Context, rec domain.BreedingRecord) (domain.BreedingRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("cattle_id", rec.CattleID).
		Set("breeding_date", rec.BreedingDate).
		Set("breeding_type", string(rec.BreedingType)).
		Set("sire_details", rec.SireDetails).
		Set("semen_batch", rec.SemenBatch).
		Set("technician_id", rec.TechnicianID).
		Set("breeding_cost", rec.BreedingCost).
		Set("status", string(rec.Status)).
		Set("pregnancy_status", pregnancyStatusArg(rec.PregnancyStatus)).
		Set("expected_date", rec.ExpectedDate).
		Set("notes", rec.Notes).
		Where(squirrel.Eq{"id": rec.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("build breeding_record update: %w", err)
	}

	var row breedingRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.BreedingRecord{}, postgres.MapError(err, "breeding_record", rec.ID)
	}

	return row.toDomain(), nil
}

// Delete removes a breeding record.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build breeding_record delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "breeding_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("breeding_record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one breeding record by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("build breeding_record select: %w", err)
	}

	var row breedingRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.BreedingRecord{}, postgres.MapError(err, "breeding_record", id)
	}

	return row.toDomain(), nil
}

// List returns breeding records matching the filter, newest breeding first.
func (r *Repo) List(ctx context.Context, filter domain.BreedingRecordFilter) ([]domain.BreedingRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("breeding_date DESC", "created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.CattleID != nil {
		builder = builder.Where(squirrel.Eq{"cattle_id": *filter.CattleID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build breeding_record list: %w", err)
	}

	var rows []breedingRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list breeding_records: %w", err)
	}

	out := make([]domain.BreedingRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type breedingRow struct {
	ID              uuid.UUID  `db:"id"`
	CattleID        uuid.UUID  `db:"cattle_id"`
	BreedingDate    time.Time  `db:"breeding_date"`
	BreedingType    string     `db:"breeding_type"`
	SireDetails     string     `db:"sire_details"`
	SemenBatch      *string    `db:"semen_batch"`
	TechnicianID    *uuid.UUID `db:"technician_id"`
	BreedingCost    float64    `db:"breeding_cost"`
	Status          string     `db:"status"`
	PregnancyStatus *string    `db:"pregnancy_status"`
	ExpectedDate    time.Time  `db:"expected_date"`
	Notes           *string    `db:"notes"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (row breedingRow) toDomain() domain.BreedingRecord {
	rec := domain.BreedingRecord{
		ID:           row.ID,
		CattleID:     row.CattleID,
		BreedingDate: row.BreedingDate,
		BreedingType: domain.BreedingType(row.BreedingType),
		SireDetails:  row.SireDetails,
		SemenBatch:   row.SemenBatch,
		TechnicianID: row.TechnicianID,
		BreedingCost: row.BreedingCost,
		Status:       domain.BreedingRecordStatus(row.Status),
		ExpectedDate: row.ExpectedDate,
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.PregnancyStatus != nil {
		ps := domain.PregnancyStatus(*row.PregnancyStatus)
		rec.PregnancyStatus = &ps
	}
	return rec
}

// pregnancyStatusArg converts the optional enum to a nullable text argument.
func pregnancyStatusArg(ps *domain.PregnancyStatus) *string {
	if ps == nil {
		return nil
	}
	s := string(*ps)
	return &s
}
