package domain

import (
	"time"

	"github.com/google/uuid"
)

// BreedingRecord documents a single breeding event for one animal.
// ExpectedDate is computed from BreedingDate at write time, never supplied
// by the caller.
type BreedingRecord struct {
	ID              uuid.UUID
	CattleID        uuid.UUID
	BreedingDate    time.Time
	BreedingType    BreedingType
	SireDetails     string
	SemenBatch      *string
	TechnicianID    *uuid.UUID
	BreedingCost    float64
	Status          BreedingRecordStatus
	PregnancyStatus *PregnancyStatus
	ExpectedDate    time.Time
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BreedingRecordFilter defines parameters for listing breeding records.
type BreedingRecordFilter struct {
	CattleID *uuid.UUID
	Status   *BreedingRecordStatus

	Limit  int
	Offset int
}
