package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorFromContext(t *testing.T) {
	t.Run("round trips through the context", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Name: "Dana Whitfield", Role: RoleResponder}
		ctx := WithActor(context.Background(), actor)

		got, err := ActorFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, actor, got)
	})

	t.Run("fails on an empty context", func(t *testing.T) {
		_, err := ActorFromContext(context.Background())
		assert.ErrorIs(t, err, ErrNoActor)
	})

	t.Run("rejects a zero-id actor", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{})
		_, err := ActorFromContext(ctx)
		assert.ErrorIs(t, err, ErrNoActor)
	})
}
