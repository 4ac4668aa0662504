package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRequestsHandler_Handle(t *testing.T) {
	requesterID := uuid.New()
	responderID := uuid.New()
	directory := &staticDirectory{}

	requests := func(t *testing.T) []*domain.MeetingRequest {
		t.Helper()
		pending := testRequest(t, requesterID, responderID, nil, 17, 9, 10)
		accepted := testRequest(t, requesterID, responderID, nil, 18, 11, 12)
		require.NoError(t, accepted.Accept())
		rejected := testRequest(t, requesterID, responderID, nil, 19, 13, 14)
		require.NoError(t, rejected.Reject("unavailable"))
		return []*domain.MeetingRequest{pending, accepted, rejected}
	}

	t.Run("lists all requests for the responder", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewListRequestsHandler(repo, directory)

		ctx := context.Background()
		repo.On("FindByResponderID", ctx, responderID).Return(requests(t), nil)

		views, err := handler.Handle(ctx, ListRequestsQuery{ResponderID: responderID})

		require.NoError(t, err)
		require.Len(t, views, 3)
	})

	t.Run("filters by status", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewListRequestsHandler(repo, directory)

		ctx := context.Background()
		repo.On("FindByResponderID", ctx, responderID).Return(requests(t), nil)

		views, err := handler.Handle(ctx, ListRequestsQuery{
			ResponderID: responderID,
			Status:      domain.StatusAccepted,
		})

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, domain.StatusAccepted, views[0].Status)
		assert.Equal(t, "2025-06-18", views[0].Date)
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewListRequestsHandler(repo, directory)

		ctx := context.Background()
		repo.On("FindByResponderID", ctx, responderID).Return([]*domain.MeetingRequest{}, nil)

		views, err := handler.Handle(ctx, ListRequestsQuery{ResponderID: responderID})

		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestSummarizeRequestsHandler_Handle(t *testing.T) {
	requesterID := uuid.New()
	responderID := uuid.New()

	t.Run("aggregates counts by status and week proximity", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewSummarizeRequestsHandler(repo)

		ctx := context.Background()
		today := time.Date(2025, 6, 16, 8, 30, 0, 0, time.UTC)

		soon := testRequest(t, requesterID, responderID, nil, 17, 9, 10)
		far := testRequest(t, requesterID, responderID, nil, 30, 9, 10)
		require.NoError(t, far.Accept())
		repo.On("FindByResponderID", ctx, responderID).Return([]*domain.MeetingRequest{soon, far}, nil)

		summary, err := handler.Handle(ctx, SummarizeRequestsQuery{
			ResponderID: responderID,
			Today:       today,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, 1, summary.Pending)
		assert.Equal(t, 1, summary.Accepted)
		assert.Equal(t, 1, summary.WithinNextWeek)
	})
}
