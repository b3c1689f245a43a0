package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user account with the given role.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		FullName:     "Test User " + suffix,
		Username:     "testuser-" + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		PhoneNumber:  "+254712345678",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealha",
		Role:         role,
		Status:       domain.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, full_name, username, email, phone_number, password_hash, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.FullName, user.Username, user.Email, user.PhoneNumber,
		user.PasswordHash, string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedWorker creates a user account plus its workers row.
// Returns a filled domain.Worker with the joined User populated.
func SeedWorker(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Worker {
	t.Helper()
	ctx := context.Background()

	user := SeedUser(t, pool, role)

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	worker := domain.Worker{
		ID:        uuid.New(),
		UserID:    user.ID,
		IDNumber:  "ID-" + suffix,
		DateHired: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Salary:    25000,
		CreatedAt: now,
		UpdatedAt: now,
		User:      &user,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO workers (id, user_id, id_number, date_hired, salary, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		worker.ID, worker.UserID, worker.IDNumber, worker.DateHired, worker.Salary,
		worker.CreatedAt, worker.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWorker insert worker: %v", err)
	}

	return worker
}

// SeedCattle creates an animal with default denormalized statuses
// (healthy, open). Returns a filled domain.Cattle.
func SeedCattle(t *testing.T, pool *pgxpool.Pool) domain.Cattle {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	cattle := domain.Cattle{
		ID:             uuid.New(),
		TagNumber:      "TAG-" + suffix,
		Breed:          "Friesian",
		DateOfBirth:    time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderFemale,
		Status:         domain.CattleStatusActive,
		HealthStatus:   domain.HealthStatusHealthy,
		BreedingStatus: domain.BreedingStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO cattle (id, tag_number, breed, date_of_birth, gender, status, health_status, breeding_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		cattle.ID, cattle.TagNumber, cattle.Breed, cattle.DateOfBirth, string(cattle.Gender),
		string(cattle.Status), string(cattle.HealthStatus), string(cattle.BreedingStatus),
		cattle.CreatedAt, cattle.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCattle insert cattle: %v", err)
	}

	return cattle
}

// SeedFeed creates a feed inventory item with plenty of stock and a far-off
// expiry date. Returns a filled domain.Feed.
func SeedFeed(t *testing.T, pool *pgxpool.Pool) domain.Feed {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	feed := domain.Feed{
		ID:              uuid.New(),
		Name:            "Feed " + suffix,
		Type:            domain.FeedTypeHay,
		UnitOfMeasure:   domain.UnitBale,
		UnitCost:        350,
		CurrentQuantity: 100,
		ReorderLevel:    20,
		ExpiryDate:      now.AddDate(1, 0, 0),
		Status:          domain.StockStatusInStock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO feed_inventory (id, feed_name, feed_type, unit_of_measure, unit_cost, current_quantity, reorder_level, expiry_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		feed.ID, feed.Name, string(feed.Type), string(feed.UnitOfMeasure), feed.UnitCost,
		feed.CurrentQuantity, feed.ReorderLevel, feed.ExpiryDate, string(feed.Status),
		feed.CreatedAt, feed.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFeed insert feed: %v", err)
	}

	return feed
}
