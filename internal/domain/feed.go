package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feed is one item in the feed inventory.
// Status is derived from quantity, reorder level and expiry date at every
// write; it is never supplied by the caller.
type Feed struct {
	ID              uuid.UUID
	Name            string
	Type            FeedType
	Description     *string
	Supplier        *string
	UnitOfMeasure   UnitOfMeasure
	UnitCost        float64
	CurrentQuantity float64
	ReorderLevel    float64
	ExpiryDate      time.Time
	StorageLocation *string
	Status          StockStatus
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedTransaction is one entry in the append-only feed stock ledger.
// Every quantity-affecting feed mutation writes exactly one ledger row in
// the same transaction.
type FeedTransaction struct {
	ID        uuid.UUID
	FeedID    uuid.UUID
	Type      FeedTransactionType
	Quantity  float64
	UnitCost  float64
	TotalCost float64
	Notes     *string
	CreatedAt time.Time
}

// FeedFilter defines parameters for listing feed items.
type FeedFilter struct {
	// Search matches name or supplier, ILIKE '%...%'.
	Search *string
	Type   *FeedType
	Status *StockStatus

	Limit  int
	Offset int
}
