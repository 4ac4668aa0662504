package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/parley/internal/negotiation/domain"
	"github.com/felixgeelhaar/parley/internal/negotiation/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, responderID uuid.UUID, title string, day, startH, endH int) *domain.MeetingRequest {
	t.Helper()

	start, err := domain.NewTimeOfDay(startH, 0)
	require.NoError(t, err)
	end, err := domain.NewTimeOfDay(endH, 0)
	require.NoError(t, err)

	request, err := domain.NewMeetingRequest(uuid.New(), responderID, nil, title, domain.Window{
		Date:  time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		Start: start,
		End:   end,
	})
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}

func TestICalExporter_Export(t *testing.T) {
	repo := persistence.NewMemoryRequestRepository()
	exporter := NewICalExporter(repo)
	ctx := context.Background()
	responderID := uuid.New()

	accepted := newRequest(t, responderID, "Deposition prep", 17, 9, 10)
	require.NoError(t, accepted.Accept())
	accepted.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, accepted))

	pending := newRequest(t, responderID, "Settlement call", 18, 11, 12)
	require.NoError(t, repo.Save(ctx, pending))

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, responderID, &buf))

	feed := buf.String()
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:Deposition prep")
	assert.Contains(t, feed, "UID:"+accepted.ID().String())
	assert.Contains(t, feed, "DTSTART:20250617T090000Z")
	assert.Contains(t, feed, "DTEND:20250617T100000Z")

	// Only accepted requests are exported.
	assert.NotContains(t, feed, "Settlement call")
	assert.Equal(t, 1, strings.Count(feed, "BEGIN:VEVENT"))
}

func TestICalExporter_ExportUsesCounterProposal(t *testing.T) {
	repo := persistence.NewMemoryRequestRepository()
	exporter := NewICalExporter(repo)
	ctx := context.Background()
	responderID := uuid.New()

	request := newRequest(t, responderID, "Mediation session", 17, 9, 10)
	start, err := domain.NewTimeOfDay(14, 0)
	require.NoError(t, err)
	end, err := domain.NewTimeOfDay(15, 0)
	require.NoError(t, err)
	require.NoError(t, request.Reschedule(domain.Window{
		Date:  time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
		Start: start,
		End:   end,
	}, ""))
	require.NoError(t, request.Accept())
	request.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, request))

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, responderID, &buf))

	feed := buf.String()
	assert.Contains(t, feed, "DTSTART:20250619T140000Z")
	assert.Contains(t, feed, "DTEND:20250619T150000Z")
}
