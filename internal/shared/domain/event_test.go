package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	event := NewBaseEvent(aggregateID, "MeetingRequest", "negotiation.request.created")

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "MeetingRequest", event.AggregateType())
	assert.Equal(t, "negotiation.request.created", event.RoutingKey())
	assert.False(t, event.OccurredAt().IsZero())
	assert.Equal(t, EventMetadata{}, event.Metadata())
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := NewBaseEvent(uuid.New(), "MeetingRequest", "negotiation.request.accepted")

	metadata := EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		ActorID:       uuid.New(),
	}
	event.SetMetadata(metadata)

	assert.Equal(t, metadata, event.Metadata())
}
