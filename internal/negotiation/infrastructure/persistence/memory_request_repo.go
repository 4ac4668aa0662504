package persistence

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

// MemoryRequestRepository implements domain.Repository with an in-process
// map. It honors the same optimistic-concurrency contract as the durable
// stores, which makes it a drop-in for tests and local mode.
type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.MeetingRequest
}

// NewMemoryRequestRepository creates a new in-memory request repository.
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{
		requests: make(map[uuid.UUID]*domain.MeetingRequest),
	}
}

// Save persists the request, failing with ErrConcurrentModification when
// the stored version has moved past the version the aggregate was loaded at.
func (r *MemoryRequestRepository) Save(ctx context.Context, request *domain.MeetingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.requests[request.ID()]; ok {
		if existing.Version() != request.Version() {
			return domain.ErrConcurrentModification
		}
	}

	request.IncrementVersion()
	r.requests[request.ID()] = cloneRequest(request)
	return nil
}

// FindByID retrieves a request by its ID, or nil when absent.
func (r *MemoryRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MeetingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return cloneRequest(request), nil
}

// FindByResponderID retrieves all requests addressed to a responder.
func (r *MemoryRequestRepository) FindByResponderID(ctx context.Context, responderID uuid.UUID) ([]*domain.MeetingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []*domain.MeetingRequest
	for _, request := range r.requests {
		if request.ResponderID() == responderID {
			requests = append(requests, cloneRequest(request))
		}
	}
	return requests, nil
}

// FindByRequesterID retrieves all requests proposed by a requester.
func (r *MemoryRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*domain.MeetingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []*domain.MeetingRequest
	for _, request := range r.requests {
		if request.RequesterID() == requesterID {
			requests = append(requests, cloneRequest(request))
		}
	}
	return requests, nil
}

// cloneRequest rebuilds the aggregate so callers never share state with the
// store.
func cloneRequest(request *domain.MeetingRequest) *domain.MeetingRequest {
	var subjectID *uuid.UUID
	if s := request.SubjectID(); s != nil {
		copied := *s
		subjectID = &copied
	}

	var rescheduled *domain.Window
	if w := request.Rescheduled(); w != nil {
		copied := *w
		rescheduled = &copied
	}

	return domain.RehydrateMeetingRequest(
		request.ID(),
		request.RequesterID(),
		request.ResponderID(),
		subjectID,
		request.Title(),
		request.Original(),
		rescheduled,
		request.Status(),
		request.Note(),
		request.Version(),
		request.CreatedAt(),
		request.UpdatedAt(),
	)
}
