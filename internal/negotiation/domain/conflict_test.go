package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedRequest(t *testing.T, window Window) *MeetingRequest {
	t.Helper()
	request, err := NewMeetingRequest(uuid.New(), uuid.New(), nil, "Existing commitment", window)
	require.NoError(t, err)
	require.NoError(t, request.Accept())
	return request
}

func TestHasConflict_Overlap(t *testing.T) {
	// Request A occupies 2025-06-17 09:00-10:00, accepted.
	existing := []*MeetingRequest{acceptedRequest(t, testWindow(t, 17, 9, 10))}

	candidate := Window{
		Date:  existing[0].Original().Date,
		Start: mustTimeOfDay(t, 9, 30),
		End:   mustTimeOfDay(t, 10, 30),
	}
	assert.True(t, HasConflict(candidate, existing, uuid.Nil))

	// Touching at the boundary is not a conflict.
	assert.False(t, HasConflict(testWindow(t, 17, 10, 11), existing, uuid.Nil))
}

func TestHasConflict_SkipsRejected(t *testing.T) {
	window := testWindow(t, 17, 9, 10)
	rejected, e := NewMeetingRequest(uuid.New(), uuid.New(), nil, "Declined", window)
	require.NoError(t, e)
	require.NoError(t, rejected.Reject("busy"))

	// A candidate identical to a rejected request's window is free.
	assert.False(t, HasConflict(window, []*MeetingRequest{rejected}, uuid.Nil))
}

func TestHasConflict_SelfExclusion(t *testing.T) {
	request := acceptedRequest(t, testWindow(t, 17, 9, 10))

	// A request being rescheduled never conflicts with itself.
	assert.False(t, HasConflict(request.EffectiveWindow(), []*MeetingRequest{request}, request.ID()))
	assert.True(t, HasConflict(request.EffectiveWindow(), []*MeetingRequest{request}, uuid.Nil))
}

func TestHasConflict_UsesEffectiveWindow(t *testing.T) {
	request, e := NewMeetingRequest(uuid.New(), uuid.New(), nil, "Countered", testWindow(t, 17, 9, 10))
	require.NoError(t, e)
	require.NoError(t, request.Reschedule(testWindow(t, 18, 14, 15), ""))
	existing := []*MeetingRequest{request}

	// The original slot is released once a counter-proposal exists.
	assert.False(t, HasConflict(testWindow(t, 17, 9, 10), existing, uuid.Nil))
	assert.True(t, HasConflict(testWindow(t, 18, 14, 15), existing, uuid.Nil))
}

func TestHasConflict_PendingStillOccupiesSlot(t *testing.T) {
	pending, e := NewMeetingRequest(uuid.New(), uuid.New(), nil, "Awaiting answer", testWindow(t, 17, 9, 10))
	require.NoError(t, e)

	assert.True(t, HasConflict(testWindow(t, 17, 9, 10), []*MeetingRequest{pending}, uuid.Nil))
}

func TestHasConflict_EmptySet(t *testing.T) {
	assert.False(t, HasConflict(testWindow(t, 17, 9, 10), nil, uuid.Nil))
	assert.False(t, HasConflict(testWindow(t, 17, 9, 10), []*MeetingRequest{nil}, uuid.Nil))
}
