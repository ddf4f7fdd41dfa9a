package ctxutil

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{ID: "USR-001", Email: "admin@newsroom.local"})

	actor, ok := ActorFromContext(ctx)
	if !ok {
		t.Fatal("ActorFromContext() ok = false, want true")
	}
	if actor.Email != "admin@newsroom.local" {
		t.Errorf("Email = %q, want admin@newsroom.local", actor.Email)
	}
	if got := ActorIDFromContext(ctx); got != "USR-001" {
		t.Errorf("ActorIDFromContext() = %q, want USR-001", got)
	}
}

func TestActorMissing(t *testing.T) {
	if _, ok := ActorFromContext(context.Background()); ok {
		t.Error("ActorFromContext() ok = true on empty context")
	}
	if got := ActorIDFromContext(context.Background()); got != "" {
		t.Errorf("ActorIDFromContext() = %q, want empty", got)
	}

	ctx := WithActor(context.Background(), Actor{})
	if _, ok := ActorFromContext(ctx); ok {
		t.Error("ActorFromContext() ok = true for an actor without ID")
	}
}
