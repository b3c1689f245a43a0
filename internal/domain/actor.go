package domain

import "github.com/google/uuid"

// Actor is the authenticated principal performing an operation.
// It is resolved once per request by the auth middleware and carried in the
// request context; it never changes during a call.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// Origin carries request metadata recorded alongside audit entries.
type Origin struct {
	IPAddress string
	UserAgent string
}
