// Package audit implements the audit log repository using PostgreSQL.
// The audit_logs table is append-only: records are inserted inside the
// mutating transaction and never updated or deleted.
package audit

import (
	"context"
	"encoding/json"
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

const table = "audit_logs"

var columns = []string{
	"id", "user_id", "action", "entity_type", "entity_id",
	"old_values", "new_values", "ip_address", "user_agent", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
// The insert rides the caller's transaction when one is present in ctx, so a
// failed audit write rolls the whole mutation back.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	oldJSON, err := marshalValues(record.OldValues)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal old_values: %w", err)
	}
	newJSON, err := marshalValues(record.NewValues)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal new_values: %w", err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			record.ID, record.UserID, string(record.Action), string(record.EntityType),
			record.EntityID, oldJSON, newJSON, record.IPAddress, record.UserAgent,
			record.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build audit_record insert: %w", err)
	}

	var row auditRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return row.toDomain()
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"entity_type": string(entityType),
			"entity_id":   entityID,
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit_records by entity: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	return toDomainRecords(rows)
}

// GetByUser returns audit log records for a user, ordered by created_at DESC
// with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit_records by user: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get audit_records by user: %w", err)
	}

	return toDomainRecords(rows)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type auditRow struct {
	ID         uuid.UUID  `db:"id"`
	UserID     *uuid.UUID `db:"user_id"`
	Action     string     `db:"action"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	OldValues  []byte     `db:"old_values"`
	NewValues  []byte     `db:"new_values"`
	IPAddress  string     `db:"ip_address"`
	UserAgent  string     `db:"user_agent"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (row auditRow) toDomain() (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         row.ID,
		UserID:     row.UserID,
		Action:     domain.AuditAction(row.Action),
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		IPAddress:  row.IPAddress,
		UserAgent:  row.UserAgent,
		CreatedAt:  row.CreatedAt,
	}

	var err error
	if record.OldValues, err = unmarshalValues(row.OldValues); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal old_values: %w", row.ID, err)
	}
	if record.NewValues, err = unmarshalValues(row.NewValues); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal new_values: %w", row.ID, err)
	}

	return record, nil
}

func toDomainRecords(rows []auditRow) ([]domain.AuditRecord, error) {
	records := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// marshalValues converts a snapshot map to JSONB bytes; nil stays NULL so
// "no snapshot" (create has no old, delete has no new) is distinguishable
// from an empty snapshot.
func marshalValues(values map[string]any) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}

func unmarshalValues(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
