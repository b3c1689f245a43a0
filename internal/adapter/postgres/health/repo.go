// Package health implements the health record repository using PostgreSQL.
package health

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

const table = "health_records"

var columns = []string{
	"id", "cattle_id", "date_of_checkup", "health_issue", "symptoms",
	"diagnosis", "treatment_given", "treatment_cost", "medications",
	"next_checkup_date", "attended_by", "notes", "status",
	"created_at", "updated_at",
}

// Repo provides health record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new health record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new health record and returns the persisted row.
func (r *Repo) Create(ctx context.Context, rec domain.HealthRecord) (domain.HealthRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "cattle_id", "date_of_checkup", "health_issue", "symptoms",
			"diagnosis", "treatment_given", "treatment_cost", "medications",
			"next_checkup_date", "attended_by", "notes", "status").
		Values(rec.ID, rec.CattleID, rec.DateOfCheckup, rec.HealthIssue, rec.Symptoms,
			rec.Diagnosis, rec.TreatmentGiven, rec.TreatmentCost, rec.Medications,
			rec.NextCheckupDate, rec.AttendedBy, rec.Notes, string(rec.Status)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.HealthRecord{}, fmt.Errorf("build health_record insert: %w", err)
	}

	var row healthRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.HealthRecord{}, postgres.MapError(err, "health_record", rec.ID)
	}

	return row.toDomain(), nil
}

// Update rewrites all mutable fields of a health record.
func (r *Repo) Update(ctx context.Context, rec domain.HealthRecord) (domain.HealthRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("cattle_id", rec.CattleID).
		Set("date_of_checkup", rec.DateOfCheckup).
		Set("health_issue", rec.HealthIssue).
		Set("symptoms", rec.Symptoms).
		Set("diagnosis", rec.Diagnosis).
		Set("treatment_given", rec.TreatmentGiven).
		Set("treatment_cost", rec.TreatmentCost).
		Set("medications", rec.Medications).
		Set("next_checkup_date", rec.NextCheckupDate).
		Set("attended_by", rec.AttendedBy).
		Set("notes", rec.Notes).
		Set("status", string(rec.Status)).
		Where(squirrel.Eq{"id": rec.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.HealthRecord{}, fmt.Errorf("build health_record update: %w", err)
	}

	var row healthRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.HealthRecord{}, postgres.MapError(err, "health_record", rec.ID)
	}

	return row.toDomain(), nil
}

// Delete removes a health record.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build health_record delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "health_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("health_record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one health record by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.HealthRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.HealthRecord{}, fmt.Errorf("build health_record select: %w", err)
	}

	var row healthRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.HealthRecord{}, postgres.MapError(err, "health_record", id)
	}

	return row.toDomain(), nil
}

// List returns health records matching the filter, newest checkup first.
func (r *Repo) List(ctx context.Context, filter domain.HealthRecordFilter) ([]domain.HealthRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("date_of_checkup DESC", "created_at DESC").
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
		return nil, fmt.Errorf("build health_record list: %w", err)
	}

	var rows []healthRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list health_records: %w", err)
	}

	out := make([]domain.HealthRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type healthRow struct {
	ID              uuid.UUID  `db:"id"`
	CattleID        uuid.UUID  `db:"cattle_id"`
	DateOfCheckup   time.Time  `db:"date_of_checkup"`
	HealthIssue     string     `db:"health_issue"`
	Symptoms        *string    `db:"symptoms"`
	Diagnosis       *string    `db:"diagnosis"`
	TreatmentGiven  string     `db:"treatment_given"`
	TreatmentCost   float64    `db:"treatment_cost"`
	Medications     *string    `db:"medications"`
	NextCheckupDate *time.Time `db:"next_checkup_date"`
	AttendedBy      uuid.UUID  `db:"attended_by"`
	Notes           *string    `db:"notes"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (row healthRow) toDomain() domain.HealthRecord {
	return domain.HealthRecord{
		ID:              row.ID,
		CattleID:        row.CattleID,
		DateOfCheckup:   row.DateOfCheckup,
		HealthIssue:     row.HealthIssue,
		Symptoms:        row.Symptoms,
		Diagnosis:       row.Diagnosis,
		TreatmentGiven:  row.TreatmentGiven,
		TreatmentCost:   row.TreatmentCost,
		Medications:     row.Medications,
		NextCheckupDate: row.NextCheckupDate,
		AttendedBy:      row.AttendedBy,
		Notes:           row.Notes,
		Status:          domain.HealthRecordStatus(row.Status),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
