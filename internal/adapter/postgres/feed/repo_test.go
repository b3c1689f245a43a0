package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres/feed"
	"github.com/farmstack/dairytrack-backend/internal/adapter/postgres/testhelper"
	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*feed.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return feed.New(pool), pool
}

func newFeed(name string) domain.Feed {
	return domain.Feed{
		ID:              uuid.New(),
		Name:            name,
		Type:            domain.FeedTypeConcentrate,
		UnitOfMeasure:   domain.UnitBag,
		UnitCost:        2500,
		CurrentQuantity: 40,
		ReorderLevel:    10,
		ExpiryDate:      time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.StockStatusInStock,
	}
}

func uniqueName(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	input := newFeed(uniqueName("Dairy Meal"))
	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.Name != input.Name {
		t.Errorf("Name mismatch: got %q", created.Name)
	}
	if created.Status != domain.StockStatusInStock {
		t.Errorf("Status mismatch: got %s", created.Status)
	}
	if !created.ExpiryDate.Equal(input.ExpiryDate) {
		t.Errorf("ExpiryDate mismatch: got %s", created.ExpiryDate)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.CurrentQuantity != 40 {
		t.Errorf("CurrentQuantity mismatch: got %v", got.CurrentQuantity)
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newFeed(uniqueName("Hay")))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	created.CurrentQuantity = 5
	created.Status = domain.StockStatusLowStock

	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.CurrentQuantity != 5 {
		t.Errorf("CurrentQuantity not updated: got %v", updated.CurrentQuantity)
	}
	if updated.Status != domain.StockStatusLowStock {
		t.Errorf("Status not updated: got %s", updated.Status)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Update(context.Background(), newFeed(uniqueName("Ghost")))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Delete_CascadesLedger(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newFeed(uniqueName("Silage")))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	_, err = repo.CreateTransaction(ctx, domain.FeedTransaction{
		ID:        uuid.New(),
		FeedID:    created.ID,
		Type:      domain.FeedTxInitialStock,
		Quantity:  created.CurrentQuantity,
		UnitCost:  created.UnitCost,
		TotalCost: created.CurrentQuantity * created.UnitCost,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}

	var count int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM feed_transactions WHERE feed_id = $1`, created.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count ledger rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected ledger rows to cascade, got %d", count)
	}
}

func TestRepo_CreateTransaction_AndList(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newFeed(uniqueName("Minerals")))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	initial := domain.FeedTransaction{
		ID:        uuid.New(),
		FeedID:    created.ID,
		Type:      domain.FeedTxInitialStock,
		Quantity:  40,
		UnitCost:  2500,
		TotalCost: 100000,
	}
	got, err := repo.CreateTransaction(ctx, initial)
	if err != nil {
		t.Fatalf("CreateTransaction: unexpected error: %v", err)
	}
	if got.Type != domain.FeedTxInitialStock {
		t.Errorf("Type mismatch: got %s", got.Type)
	}
	if got.TotalCost != 100000 {
		t.Errorf("TotalCost mismatch: got %v", got.TotalCost)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected DB-assigned created_at")
	}

	adjust := initial
	adjust.ID = uuid.New()
	adjust.Type = domain.FeedTxAdjustmentSubtract
	adjust.Quantity = 10
	adjust.TotalCost = 25000
	if _, err := repo.CreateTransaction(ctx, adjust); err != nil {
		t.Fatalf("CreateTransaction (adjust): unexpected error: %v", err)
	}

	ledger, err := repo.ListTransactions(ctx, created.ID, 50, 0)
	if err != nil {
		t.Fatalf("ListTransactions: unexpected error: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", len(ledger))
	}
}

func TestRepo_CreateTransaction_UnknownFeed(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.CreateTransaction(context.Background(), domain.FeedTransaction{
		ID:     uuid.New(),
		FeedID: uuid.New(),
		Type:   domain.FeedTxInitialStock,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown feed_id, got: %v", err)
	}
}

func TestRepo_List_Filters(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	marker := uuid.New().String()[:8]

	hay := newFeed("FLT-" + marker + "-Hay")
	hay.Type = domain.FeedTypeHay
	meal := newFeed("FLT-" + marker + "-Meal")

	for _, f := range []domain.Feed{hay, meal} {
		if _, err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
	}

	search := "FLT-" + marker
	feedType := domain.FeedTypeHay
	got, err := repo.List(ctx, domain.FeedFilter{
		Search: &search,
		Type:   &feedType,
		Limit:  50,
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Name != hay.Name {
		t.Errorf("wrong match: got %q", got[0].Name)
	}
}
