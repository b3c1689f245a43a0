// Package feed implements the feed inventory repository using PostgreSQL.
// It owns two tables: feed_inventory and the append-only feed_transactions
// ledger.
package feed

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

const (
	table   = "feed_inventory"
	txTable = "feed_transactions"
)

var columns = []string{
	"id", "feed_name", "feed_type", "description", "supplier",
	"unit_of_measure", "unit_cost", "current_quantity", "reorder_level",
	"expiry_date", "storage_location", "status", "notes",
	"created_at", "updated_at",
}

var txColumns = []string{
	"id", "feed_id", "transaction_type", "quantity", "unit_cost",
	"total_cost", "notes", "created_at",
}

// Repo provides feed inventory persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new feed repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new feed item and returns the persisted row.
func (r *Repo) Create(ctx context.Context, f domain.Feed) (domain.Feed, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "feed_name", "feed_type", "description", "supplier",
			"unit_of_measure", "unit_cost", "current_quantity", "reorder_level",
			"expiry_date", "storage_location", "status", "notes").
		Values(f.ID, f.Name, string(f.Type), f.Description, f.Supplier,
			string(f.UnitOfMeasure), f.UnitCost, f.CurrentQuantity, f.ReorderLevel,
			f.ExpiryDate, f.StorageLocation, string(f.Status), f.Notes).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Feed{}, fmt.Errorf("build feed insert: %w", err)
	}

	var row feedRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Feed{}, postgres.MapError(err, "feed", f.ID)
	}

	return row.toDomain(), nil
}

// Update rewrites all mutable fields of a feed item, including the derived
// stock status computed by the service.
func (r *Repo) Update(ctx context.Context, f domain.Feed) (domain.Feed, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("feed_name", f.Name).
		Set("feed_type", string(f.Type)).
		Set("description", f.Description).
		Set("supplier", f.Supplier).
		Set("unit_of_measure", string(f.UnitOfMeasure)).
		Set("unit_cost", f.UnitCost).
		Set("current_quantity", f.CurrentQuantity).
		Set("reorder_level", f.ReorderLevel).
		Set("expiry_date", f.ExpiryDate).
		Set("storage_location", f.StorageLocation).
		Set("status", string(f.Status)).
		Set("notes", f.Notes).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Feed{}, fmt.Errorf("build feed update: %w", err)
	}

	var row feedRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Feed{}, postgres.MapError(err, "feed", f.ID)
	}

	return row.toDomain(), nil
}

// Delete removes a feed item. Ledger entries cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build feed delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "feed", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("feed %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CreateTransaction appends one entry to the feed stock ledger. Always called
// inside the feed mutation transaction.
func (r *Repo) CreateTransaction(ctx context.Context, tx domain.FeedTransaction) (domain.FeedTransaction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(txTable).
		Columns("id", "feed_id", "transaction_type", "quantity", "unit_cost",
			"total_cost", "notes").
		Values(tx.ID, tx.FeedID, string(tx.Type), tx.Quantity, tx.UnitCost,
			tx.TotalCost, tx.Notes).
		Suffix("RETURNING " + strings.Join(txColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.FeedTransaction{}, fmt.Errorf("build feed_transaction insert: %w", err)
	}

	var row feedTxRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.FeedTransaction{}, postgres.MapError(err, "feed_transaction", tx.ID)
	}

	return row.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one feed item by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Feed, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Feed{}, fmt.Errorf("build feed select: %w", err)
	}

	var row feedRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Feed{}, postgres.MapError(err, "feed", id)
	}

	return row.toDomain(), nil
}

// List returns feed items matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.FeedFilter) ([]domain.Feed, error) {
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
			squirrel.ILike{"feed_name": pattern},
			squirrel.ILike{"supplier": pattern},
		})
	}
	if filter.Type != nil {
		builder = builder.Where(squirrel.Eq{"feed_type": string(*filter.Type)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed list: %w", err)
	}

	var rows []feedRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	out := make([]domain.Feed, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ListTransactions returns the ledger for one feed item, newest first.
func (r *Repo) ListTransactions(ctx context.Context, feedID uuid.UUID, limit, offset int) ([]domain.FeedTransaction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(txColumns...).
		From(txTable).
		Where(squirrel.Eq{"feed_id": feedID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed_transaction list: %w", err)
	}

	var rows []feedTxRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list feed_transactions: %w", err)
	}

	out := make([]domain.FeedTransaction, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type feedRow struct {
	ID              uuid.UUID `db:"id"`
	FeedName        string    `db:"feed_name"`
	FeedType        string    `db:"feed_type"`
	Description     *string   `db:"description"`
	Supplier        *string   `db:"supplier"`
	UnitOfMeasure   string    `db:"unit_of_measure"`
	UnitCost        float64   `db:"unit_cost"`
	CurrentQuantity float64   `db:"current_quantity"`
	ReorderLevel    float64   `db:"reorder_level"`
	ExpiryDate      time.Time `db:"expiry_date"`
	StorageLocation *string   `db:"storage_location"`
	Status          string    `db:"status"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (row feedRow) toDomain() domain.Feed {
	return domain.Feed{
		ID:              row.ID,
		Name:            row.FeedName,
		Type:            domain.FeedType(row.FeedType),
		Description:     row.Description,
		Supplier:        row.Supplier,
		UnitOfMeasure:   domain.UnitOfMeasure(row.UnitOfMeasure),
		UnitCost:        row.UnitCost,
		CurrentQuantity: row.CurrentQuantity,
		ReorderLevel:    row.ReorderLevel,
		ExpiryDate:      row.ExpiryDate,
		StorageLocation: row.StorageLocation,
		Status:          domain.StockStatus(row.Status),
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

type feedTxRow struct {
	ID              uuid.UUID `db:"id"`
	FeedID          uuid.UUID `db:"feed_id"`
	TransactionType string    `db:"transaction_type"`
	Quantity        float64   `db:"quantity"`
	UnitCost        float64   `db:"unit_cost"`
	TotalCost       float64   `db:"total_cost"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
}

func (row feedTxRow) toDomain() domain.FeedTransaction {
	return domain.FeedTransaction{
		ID:        row.ID,
		FeedID:    row.FeedID,
		Type:      domain.FeedTransactionType(row.TransactionType),
		Quantity:  row.Quantity,
		UnitCost:  row.UnitCost,
		TotalCost: row.TotalCost,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
	}
}
