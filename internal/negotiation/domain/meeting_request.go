package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/parley/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("request title cannot be empty")
	ErrInvalidWindow     = errors.New("window end must be after start")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status is the lifecycle state of a meeting request.
type Status string

const (
	StatusPending     Status = "pending"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusRescheduled Status = "rescheduled"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusRescheduled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// MeetingRequest is a proposed meeting negotiated between a requester and
// a responder. The requester proposes a slot; the responder accepts,
// rejects, or counters with a single reschedule proposal.
type MeetingRequest struct {
	sharedDomain.BaseAggregateRoot
	requesterID uuid.UUID
	responderID uuid.UUID
	subjectID   *uuid.UUID
	title       string
	original    Window
	rescheduled *Window
	status      Status
	note        string
}

// NewMeetingRequest creates a pending meeting request.
func NewMeetingRequest(requesterID, responderID uuid.UUID, subjectID *uuid.UUID, title string, window Window) (*MeetingRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !window.End.After(window.Start) {
		return nil, ErrInvalidWindow
	}

	request := &MeetingRequest{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		requesterID:       requesterID,
		responderID:       responderID,
		subjectID:         subjectID,
		title:             title,
		original:          window,
		status:            StatusPending,
	}

	request.AddDomainEvent(NewRequestCreated(request))
	return request, nil
}

// Getters
func (r *MeetingRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *MeetingRequest) ResponderID() uuid.UUID { return r.responderID }
func (r *MeetingRequest) SubjectID() *uuid.UUID  { return r.subjectID }
func (r *MeetingRequest) Title() string          { return r.title }
func (r *MeetingRequest) Original() Window       { return r.original }
func (r *MeetingRequest) Rescheduled() *Window   { return r.rescheduled }
func (r *MeetingRequest) Status() Status         { return r.status }
func (r *MeetingRequest) Note() string           { return r.note }

// EffectiveWindow returns the window that currently counts: the responder's
// counter-proposal once one exists, otherwise the original proposal. This is
// the single derivation point; no other component distinguishes original
// from rescheduled data.
func (r *MeetingRequest) EffectiveWindow() Window {
	if r.rescheduled != nil {
		return *r.rescheduled
	}
	return r.original
}

// Accept finalizes the request at its effective window. Valid from pending
// or rescheduled.
func (r *MeetingRequest) Accept() error {
	if r.status != StatusPending && r.status != StatusRescheduled {
		return ErrInvalidTransition
	}
	r.status = StatusAccepted
	r.Touch()
	r.AddDomainEvent(NewRequestAccepted(r))
	return nil
}

// Reject declines the request, freeing its slot. The reason may be empty.
// Valid from pending or rescheduled.
func (r *MeetingRequest) Reject(reason string) error {
	if r.status != StatusPending && r.status != StatusRescheduled {
		return ErrInvalidTransition
	}
	r.status = StatusRejected
	r.note = reason
	r.Touch()
	r.AddDomainEvent(NewRequestRejected(r))
	return nil
}

// Reschedule records the responder's counter-proposal. The original window
// is retained unmodified for audit. Only one reschedule round is supported;
// a second round requires rejecting and re-creating the request.
func (r *MeetingRequest) Reschedule(window Window, note string) error {
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	if !window.End.After(window.Start) {
		return ErrInvalidWindow
	}
	r.rescheduled = &window
	r.status = StatusRescheduled
	r.note = note
	r.Touch()
	r.AddDomainEvent(NewRequestRescheduled(r))
	return nil
}

// RehydrateMeetingRequest recreates a request from persisted state.
func RehydrateMeetingRequest(
	id uuid.UUID,
	requesterID uuid.UUID,
	responderID uuid.UUID,
	subjectID *uuid.UUID,
	title string,
	original Window,
	rescheduled *Window,
	status Status,
	note string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *MeetingRequest {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	baseAggregate := sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version)

	return &MeetingRequest{
		BaseAggregateRoot: baseAggregate,
		requesterID:       requesterID,
		responderID:       responderID,
		subjectID:         subjectID,
		title:             title,
		original:          original,
		rescheduled:       rescheduled,
		status:            status,
		note:              note,
	}
}
