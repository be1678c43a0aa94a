package domain

import "context"

type actorKey struct{}

// WithActor stores the authenticated username on ctx.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom returns the authenticated username, or "" outside a protected request.
func ActorFrom(ctx context.Context) string {
	username, _ := ctx.Value(actorKey{}).(string)
	return username
}
