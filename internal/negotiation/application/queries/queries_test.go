package queries

import (
	"context"
	"testing"
	"time"

	directoryDomain "github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Save(ctx context.Context, request *domain.MeetingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.MeetingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingRequest), args.Error(1)
}

func (m *mockRequestRepo) FindByResponderID(ctx context.Context, responderID uuid.UUID) ([]*domain.MeetingRequest, error) {
	args := m.Called(ctx, responderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MeetingRequest), args.Error(1)
}

func (m *mockRequestRepo) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*domain.MeetingRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MeetingRequest), args.Error(1)
}

// staticDirectory resolves names from fixed maps; missing entries return
// domain.ErrNameNotFound so views fall back to raw ids.
type staticDirectory struct {
	parties  map[uuid.UUID]string
	subjects map[uuid.UUID]string
}

func (d *staticDirectory) PartyName(_ context.Context, id uuid.UUID) (string, error) {
	if name, ok := d.parties[id]; ok {
		return name, nil
	}
	return "", directoryDomain.ErrNameNotFound
}

func (d *staticDirectory) SubjectName(_ context.Context, id uuid.UUID) (string, error) {
	if name, ok := d.subjects[id]; ok {
		return name, nil
	}
	return "", directoryDomain.ErrNameNotFound
}

func testRequest(t *testing.T, requesterID, responderID uuid.UUID, subjectID *uuid.UUID, day, startH, endH int) *domain.MeetingRequest {
	t.Helper()

	start, err := domain.NewTimeOfDay(startH, 0)
	require.NoError(t, err)
	end, err := domain.NewTimeOfDay(endH, 0)
	require.NoError(t, err)

	request, err := domain.NewMeetingRequest(requesterID, responderID, subjectID, "Case review", domain.Window{
		Date:  time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		Start: start,
		End:   end,
	})
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}
