package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestHandler_Handle(t *testing.T) {
	requesterID := uuid.New()
	responderID := uuid.New()
	subjectID := uuid.New()

	directory := &staticDirectory{
		parties: map[uuid.UUID]string{
			requesterID: "Dana Whitfield",
			responderID: "Marcus Oyelaran",
		},
		subjects: map[uuid.UUID]string{
			subjectID: "Whitfield v. Harmon",
		},
	}

	t.Run("resolves names and renders the effective window", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewGetRequestHandler(repo, directory)

		ctx := context.Background()
		request := testRequest(t, requesterID, responderID, &subjectID, 17, 9, 10)
		repo.On("FindByID", ctx, request.ID()).Return(request, nil)

		view, err := handler.Handle(ctx, GetRequestQuery{RequestID: request.ID()})

		require.NoError(t, err)
		assert.Equal(t, "Case review", view.Title)
		assert.Equal(t, "Dana Whitfield", view.RequesterName)
		assert.Equal(t, "Marcus Oyelaran", view.ResponderName)
		assert.Equal(t, "Whitfield v. Harmon", view.SubjectName)
		assert.Equal(t, "2025-06-17", view.Date)
		assert.Equal(t, "9:00 AM - 10:00 AM", view.Window)
		assert.Equal(t, 60, view.DurationMinutes)
	})

	t.Run("renders the counter-proposal after a reschedule", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewGetRequestHandler(repo, directory)

		ctx := context.Background()
		request := testRequest(t, requesterID, responderID, nil, 17, 9, 10)

		start, err := domain.NewTimeOfDay(14, 0)
		require.NoError(t, err)
		end, err := domain.NewTimeOfDay(15, 30)
		require.NoError(t, err)
		require.NoError(t, request.Reschedule(domain.Window{
			Date:  request.Original().Date.AddDate(0, 0, 1),
			Start: start,
			End:   end,
		}, ""))
		repo.On("FindByID", ctx, request.ID()).Return(request, nil)

		view, handleErr := handler.Handle(ctx, GetRequestQuery{RequestID: request.ID()})

		require.NoError(t, handleErr)
		assert.Equal(t, "2025-06-18", view.Date)
		assert.Equal(t, "2:00 PM - 3:30 PM", view.Window)
		assert.Equal(t, 90, view.DurationMinutes)
	})

	t.Run("falls back to raw ids for unknown parties", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewGetRequestHandler(repo, &staticDirectory{})

		ctx := context.Background()
		request := testRequest(t, requesterID, responderID, &subjectID, 17, 9, 10)
		repo.On("FindByID", ctx, request.ID()).Return(request, nil)

		view, err := handler.Handle(ctx, GetRequestQuery{RequestID: request.ID()})

		require.NoError(t, err)
		assert.Equal(t, requesterID.String(), view.RequesterName)
		assert.Equal(t, responderID.String(), view.ResponderName)
		assert.Equal(t, subjectID.String(), view.SubjectName)
	})

	t.Run("fails when the request does not exist", func(t *testing.T) {
		repo := new(mockRequestRepo)
		handler := NewGetRequestHandler(repo, directory)

		ctx := context.Background()
		missing := uuid.New()
		repo.On("FindByID", ctx, missing).Return(nil, nil)

		view, err := handler.Handle(ctx, GetRequestQuery{RequestID: missing})

		assert.ErrorIs(t, err, ErrRequestNotFound)
		assert.Nil(t, view)
	})
}
