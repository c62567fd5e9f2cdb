package timeoff

import "errors"

var (
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrOverlappingRequest = errors.New("request overlaps an existing non-rejected request")
	ErrRequestNotFound    = errors.New("time-off request not found")
	ErrRequestClosed      = errors.New("time-off request is already approved or rejected")
	ErrNotApprover        = errors.New("user is not an approver of this request")
)
