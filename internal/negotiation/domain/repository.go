package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrConcurrentModification is returned by Save when the stored version no
// longer matches the version the aggregate was loaded at. The caller must
// re-fetch and retry against the refreshed record.
var ErrConcurrentModification = errors.New("meeting request was modified concurrently")

// Repository defines the interface for meeting request persistence.
//
// Save applies an optimistic precondition: the write succeeds only if the
// stored record is still at the aggregate's loaded version.
type Repository interface {
	Save(ctx context.Context, request *MeetingRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*MeetingRequest, error)
	FindByResponderID(ctx context.Context, responderID uuid.UUID) ([]*MeetingRequest, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*MeetingRequest, error)
}
