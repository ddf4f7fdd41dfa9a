// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// actorKey is the context key for the acting user.
type actorKey struct{}

// Actor is the user a request or command acts on behalf of.
type Actor struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok && actor.ID != ""
}

// ActorIDFromContext returns the acting user ID, or empty string if not set.
func ActorIDFromContext(ctx context.Context) string {
	actor, _ := ActorFromContext(ctx)
	return actor.ID
}
