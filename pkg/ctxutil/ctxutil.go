package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
	originKey    ctxKey = "origin"
)

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromCtx extracts the actor from the context.
// Returns false if the value is missing, has a nil ID, or is the wrong type.
// Services treat an absent actor as deny-all.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok || actor.ID == uuid.Nil {
		return domain.Actor{}, false
	}
	return actor, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOrigin stores the request origin metadata (client address, user agent)
// in the context for audit logging.
func WithOrigin(ctx context.Context, origin domain.Origin) context.Context {
	return context.WithValue(ctx, originKey, origin)
}

// OriginFromCtx extracts the request origin from the context.
// Returns zero values if absent; audit entries then record empty origin.
func OriginFromCtx(ctx context.Context) domain.Origin {
	origin, _ := ctx.Value(originKey).(domain.Origin)
	return origin
}
