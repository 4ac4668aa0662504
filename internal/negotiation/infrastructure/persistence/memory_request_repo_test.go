package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, responderID uuid.UUID) *domain.MeetingRequest {
	t.Helper()

	start, err := domain.NewTimeOfDay(9, 0)
	require.NoError(t, err)
	end, err := domain.NewTimeOfDay(10, 0)
	require.NoError(t, err)

	window := domain.Window{
		Date:  time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		Start: start,
		End:   end,
	}

	request, err := domain.NewMeetingRequest(uuid.New(), responderID, nil, "Case review", window)
	require.NoError(t, err)
	return request
}

func TestMemoryRequestRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	responderID := uuid.New()

	request := newRequest(t, responderID)
	require.NoError(t, repo.Save(ctx, request))

	found, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, request.ID(), found.ID())
	assert.Equal(t, domain.StatusPending, found.Status())
	assert.Equal(t, request.Version(), found.Version())

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRequestRepository_FindByParty(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	responderID := uuid.New()

	first := newRequest(t, responderID)
	second := newRequest(t, responderID)
	other := newRequest(t, uuid.New())

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	byResponder, err := repo.FindByResponderID(ctx, responderID)
	require.NoError(t, err)
	assert.Len(t, byResponder, 2)

	byRequester, err := repo.FindByRequesterID(ctx, first.RequesterID())
	require.NoError(t, err)
	assert.Len(t, byRequester, 1)
}

func TestMemoryRequestRepository_OptimisticConcurrency(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	responderID := uuid.New()

	request := newRequest(t, responderID)
	require.NoError(t, repo.Save(ctx, request))

	// Two responders load the same pending request.
	first, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)

	// The first transition wins.
	require.NoError(t, first.Accept())
	require.NoError(t, repo.Save(ctx, first))

	// The second save hits the stale version.
	require.NoError(t, second.Reject("too late"))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	// The stored record kept the winning transition.
	stored, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.Status())
}

func TestMemoryRequestRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	responderID := uuid.New()

	request := newRequest(t, responderID)
	require.NoError(t, repo.Save(ctx, request))

	loaded, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Accept())

	// Mutating the loaded copy does not touch the store until Save.
	stored, err := repo.FindByID(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status())
}
