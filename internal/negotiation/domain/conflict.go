package domain

import "github.com/google/uuid"

// HasConflict reports whether the candidate window overlaps the effective
// window of any other request in the set. Rejected requests free their slot
// and are skipped, as is the request identified by excludeID (a request
// being rescheduled never conflicts with itself).
//
// The check is advisory: the caller decides whether a conflict blocks or
// merely warns.
func HasConflict(candidate Window, existing []*MeetingRequest, excludeID uuid.UUID) bool {
	for _, r := range existing {
		if r == nil || r.ID() == excludeID || r.Status() == StatusRejected {
			continue
		}
		if candidate.Overlaps(r.EffectiveWindow()) {
			return true
		}
	}
	return false
}
