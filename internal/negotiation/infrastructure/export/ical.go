// Package export renders accepted meeting requests as an iCalendar feed so
// parties can subscribe from their own calendar clients.
package export

import (
	"context"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/google/uuid"
)

const productID = "-//Parley//Negotiation Core//EN"

// ICalExporter writes a responder's accepted requests as a VCALENDAR.
type ICalExporter struct {
	repo domain.Repository
}

// NewICalExporter creates a new exporter.
func NewICalExporter(repo domain.Repository) *ICalExporter {
	return &ICalExporter{repo: repo}
}

// Export writes the responder's accepted meetings to w.
func (e *ICalExporter) Export(ctx context.Context, responderID uuid.UUID, w io.Writer) error {
	requests, err := e.repo.FindByResponderID(ctx, responderID)
	if err != nil {
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, request := range requests {
		if request.Status() != domain.StatusAccepted {
			continue
		}
		event := toEvent(request)
		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}

func toEvent(request *domain.MeetingRequest) *ical.Event {
	window := request.EffectiveWindow()

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, request.ID().String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, window.StartAt())
	event.Props.SetDateTime(ical.PropDateTimeEnd, window.EndAt())
	event.Props.SetText(ical.PropSummary, request.Title())
	if note := request.Note(); note != "" {
		event.Props.SetText(ical.PropDescription, note)
	}

	return event
}
