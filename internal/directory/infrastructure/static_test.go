package infrastructure

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDirectory(t *testing.T) {
	directory := NewStaticDirectory()
	ctx := context.Background()

	partyID := uuid.New()
	subjectID := uuid.New()
	directory.AddParty(partyID, "Marcus Oyelaran")
	directory.AddSubject(subjectID, "Estate of Calloway")

	name, err := directory.PartyName(ctx, partyID)
	require.NoError(t, err)
	assert.Equal(t, "Marcus Oyelaran", name)

	name, err = directory.SubjectName(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, "Estate of Calloway", name)

	_, err = directory.PartyName(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNameNotFound)

	_, err = directory.SubjectName(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNameNotFound)
}
