package domain

import (
	sharedDomain "github.com/felixgeelhaar/parley/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "MeetingRequest"

// RequestCreated is emitted when a requester proposes a meeting.
type RequestCreated struct {
	sharedDomain.BaseEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ResponderID uuid.UUID `json:"responder_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
}

// NewRequestCreated creates a RequestCreated event.
func NewRequestCreated(r *MeetingRequest) *RequestCreated {
	return &RequestCreated{
		BaseEvent:   sharedDomain.NewBaseEvent(r.ID(), aggregateType, "negotiation.request.created"),
		RequestID:   r.ID(),
		RequesterID: r.RequesterID(),
		ResponderID: r.ResponderID(),
		Title:       r.Title(),
		Date:        r.Original().Date.Format("2006-01-02"),
		Start:       r.Original().Start.String(),
		End:         r.Original().End.String(),
	}
}

// RequestAccepted is emitted when the responder accepts a request.
type RequestAccepted struct {
	sharedDomain.BaseEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
}

// NewRequestAccepted creates a RequestAccepted event carrying the window
// that became final.
func NewRequestAccepted(r *MeetingRequest) *RequestAccepted {
	window := r.EffectiveWindow()
	return &RequestAccepted{
		BaseEvent:   sharedDomain.NewBaseEvent(r.ID(), aggregateType, "negotiation.request.accepted"),
		RequestID:   r.ID(),
		RequesterID: r.RequesterID(),
		Date:        window.Date.Format("2006-01-02"),
		Start:       window.Start.String(),
		End:         window.End.String(),
	}
}

// RequestRejected is emitted when the responder declines a request.
type RequestRejected struct {
	sharedDomain.BaseEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Reason      string    `json:"reason,omitempty"`
}

// NewRequestRejected creates a RequestRejected event.
func NewRequestRejected(r *MeetingRequest) *RequestRejected {
	return &RequestRejected{
		BaseEvent:   sharedDomain.NewBaseEvent(r.ID(), aggregateType, "negotiation.request.rejected"),
		RequestID:   r.ID(),
		RequesterID: r.RequesterID(),
		Reason:      r.Note(),
	}
}

// RequestRescheduled is emitted when the responder counters with a new slot.
type RequestRescheduled struct {
	sharedDomain.BaseEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Note        string    `json:"note,omitempty"`
}

// NewRequestRescheduled creates a RequestRescheduled event.
func NewRequestRescheduled(r *MeetingRequest) *RequestRescheduled {
	window := r.EffectiveWindow()
	return &RequestRescheduled{
		BaseEvent:   sharedDomain.NewBaseEvent(r.ID(), aggregateType, "negotiation.request.rescheduled"),
		RequestID:   r.ID(),
		RequesterID: r.RequesterID(),
		Date:        window.Date.Format("2006-01-02"),
		Start:       window.Start.String(),
		End:         window.End.String(),
		Note:        r.Note(),
	}
}
