package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is an immutable trace of one mutation: who did what, to which
// record, with before/after snapshots and request origin metadata.
//
// Exactly one record exists per committed mutation and none for a rolled
// back one; the audit write always rides the mutation's transaction.
// Records are never updated or deleted.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     *uuid.UUID // nil for system-initiated actions
	Action     AuditAction
	EntityType EntityType
	EntityID   *uuid.UUID

	// OldValues is nil for CREATE, NewValues is nil for DELETE. Snapshots
	// hold only the fields worth reviewing, not every column.
	OldValues map[string]any
	NewValues map[string]any

	IPAddress string
	UserAgent string

	CreatedAt time.Time
}
