package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Every worker has one; the bootstrap admin has
// one without a worker record.
type User struct {
	ID           uuid.UUID
	FullName     string
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	LastLogin    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Worker is the employment record attached to a user account.
// The two rows are always written inside one transaction.
type Worker struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	IDNumber       string
	DateHired      time.Time
	AssignedDuties *string
	Salary         float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// User is the joined account row, populated on reads.
	User *User
}

// WorkerFilter defines parameters for listing workers.
type WorkerFilter struct {
	// Search matches full_name, email or id_number, ILIKE '%...%'.
	Search *string
	Role   *Role
	Status *AccountStatus

	Limit  int
	Offset int
}
