package timeoff

import (
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
)

// ValidateRequestDates checks a candidate date range against the requester's
// existing requests. Rejected requests never block; every other status does.
// Intervals are half-open, so back-to-back requests sharing a boundary day do
// not overlap.
func ValidateRequestDates(start, end time.Time, history []timeoff.Request) error {
	if start.After(end) {
		return timeoff.ErrInvalidDateRange
	}

	for _, existing := range history {
		if existing.Status == timeoff.StatusRejected {
			continue
		}
		if existing.Overlaps(start, end) {
			return timeoff.ErrOverlappingRequest
		}
	}

	return nil
}
