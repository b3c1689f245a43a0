package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cattle is a single animal in the herd.
//
// HealthStatus, LastCheckup and NextCheckup mirror the latest health record;
// BreedingStatus, LastBreedingDate and ExpectedDeliveryDate mirror the latest
// breeding record. These fields are owned by the health/breeding mutation
// transactions and are never written through the cattle module itself.
type Cattle struct {
	ID             uuid.UUID
	TagNumber      string
	Name           *string
	Breed          string
	DateOfBirth    time.Time
	Gender         Gender
	CurrentWeight  *float64
	AssignedWorker *uuid.UUID
	Status         CattleStatus
	Notes          *string

	HealthStatus HealthStatus
	LastCheckup  *time.Time
	NextCheckup  *time.Time

	BreedingStatus       BreedingStatus
	LastBreedingDate     *time.Time
	ExpectedDeliveryDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CattleFilter defines parameters for listing cattle.
type CattleFilter struct {
	// Search matches tag_number or name, ILIKE '%...%'.
	Search *string
	Status *CattleStatus
	Gender *Gender

	Limit  int
	Offset int
}
