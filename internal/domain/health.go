package domain

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecord documents a single checkup or treatment for one animal.
type HealthRecord struct {
	ID              uuid.UUID
	CattleID        uuid.UUID
	DateOfCheckup   time.Time
	HealthIssue     string
	Symptoms        *string
	Diagnosis       *string
	TreatmentGiven  string
	TreatmentCost   float64
	Medications     *string
	NextCheckupDate *time.Time
	AttendedBy      uuid.UUID
	Notes           *string
	Status          HealthRecordStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HealthRecordFilter defines parameters for listing health records.
type HealthRecordFilter struct {
	CattleID *uuid.UUID
	Status   *HealthRecordStatus

	Limit  int
	Offset int
}
