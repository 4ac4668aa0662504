// Package identity carries the caller's identity as asserted by the
// external identity provider. The negotiation core trusts these values;
// authentication happens upstream.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoActor is returned when a context carries no actor.
var ErrNoActor = errors.New("no actor in context")

// Role describes how the actor participates in a negotiation.
type Role string

const (
	RoleRequester Role = "requester"
	RoleResponder Role = "responder"
)

// Actor is the authenticated principal on whose behalf an operation runs.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

type actorKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext extracts the actor from the context.
func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.ID == uuid.Nil {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}
