package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/farmstack/dairytrack-backend/internal/domain"
)

func TestWithActor_And_ActorFromCtx(t *testing.T) {
	t.Parallel()

	actor := domain.Actor{ID: uuid.New(), Name: "Jane", Role: domain.RoleVet}
	ctx := WithActor(context.Background(), actor)

	got, ok := ActorFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for a stored actor")
	}
	if got != actor {
		t.Fatalf("expected %+v, got %+v", actor, got)
	}
}

func TestActorFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ActorFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got.ID != uuid.Nil {
		t.Fatalf("expected zero actor, got %+v", got)
	}
}

func TestActorFromCtx_NilID(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), domain.Actor{Role: domain.RoleAdmin})
	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for actor with nil ID")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %q", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestOrigin_RoundTrip(t *testing.T) {
	t.Parallel()

	origin := domain.Origin{IPAddress: "10.0.0.7", UserAgent: "curl/8.0"}
	ctx := WithOrigin(context.Background(), origin)
	if got := OriginFromCtx(ctx); got != origin {
		t.Fatalf("expected %+v, got %+v", origin, got)
	}
	if got := OriginFromCtx(context.Background()); got != (domain.Origin{}) {
		t.Fatalf("expected zero origin, got %+v", got)
	}
}
