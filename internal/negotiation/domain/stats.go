package domain

import "time"

// Summary aggregates a set of requests by status and by proximity to a
// reference date.
type Summary struct {
	Total          int
	Pending        int
	Accepted       int
	Rejected       int
	Rescheduled    int
	WithinNextWeek int
}

// Summarize counts requests by status and counts those whose effective date
// falls within [today, today+7d] inclusive. The reference date is supplied
// by the caller, never read from the wall clock.
func Summarize(requests []*MeetingRequest, today time.Time) Summary {
	var summary Summary

	weekStart := startOfDay(today)
	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, r := range requests {
		if r == nil {
			continue
		}
		summary.Total++

		switch r.Status() {
		case StatusPending:
			summary.Pending++
		case StatusAccepted:
			summary.Accepted++
		case StatusRejected:
			summary.Rejected++
		case StatusRescheduled:
			summary.Rescheduled++
		}

		date := startOfDay(r.EffectiveWindow().Date)
		if !date.Before(weekStart) && !date.After(weekEnd) {
			summary.WithinNextWeek++
		}
	}

	return summary
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
