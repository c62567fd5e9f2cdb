package timeoff

import "time"

type RequestStatus string

const (
	// StatusCreated marks a request persisted but not yet evaluated.
	StatusCreated RequestStatus = "created"
	// StatusAwaiting marks a request evaluated and still pending approvals.
	StatusAwaiting RequestStatus = "awaiting"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Closed reports whether the status is terminal. Closed requests accept no
// further answers.
func (s RequestStatus) Closed() bool {
	return s == StatusApproved || s == StatusRejected
}

type RequestType string

const (
	TypePaid      RequestType = "paid"
	TypeUnpaid    RequestType = "unpaid"
	TypeSickLeave RequestType = "sick_leave"
)

func ValidRequestType(t string) bool {
	switch RequestType(t) {
	case TypePaid, TypeUnpaid, TypeSickLeave:
		return true
	}
	return false
}

// Approval is one approver's row on a request. The approver set is fixed at
// creation; Approved flips to true when that approver consents.
type Approval struct {
	ApproverID string
	Position   int
	Approved   bool
	ApprovedAt *time.Time
}

// Request entity. Date intervals are half-open: [StartDate, EndDate).
type Request struct {
	ID          string
	RequesterID string
	Type        RequestType
	Description string

	StartDate time.Time
	EndDate   time.Time

	Status    RequestStatus
	CreatedBy string
	UpdatedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses and evaluation)
	Approvers     []Approval
	RequesterName *string
}

// ApprovedCount returns how many approvers have consented so far.
func (r *Request) ApprovedCount() int {
	count := 0
	for _, a := range r.Approvers {
		if a.Approved {
			count++
		}
	}
	return count
}

// IsApprover reports whether userID belongs to the request's approver set.
func (r *Request) IsApprover(userID string) bool {
	for _, a := range r.Approvers {
		if a.ApproverID == userID {
			return true
		}
	}
	return false
}

// HasApproved reports whether userID already consented.
func (r *Request) HasApproved(userID string) bool {
	for _, a := range r.Approvers {
		if a.ApproverID == userID && a.Approved {
			return true
		}
	}
	return false
}

// Overlaps reports whether [start, end) intersects the request's interval.
func (r *Request) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && start.Before(r.EndDate)
}

// Contains reports whether the request's interval covers the instant at.
func (r *Request) Contains(at time.Time) bool {
	return !at.Before(r.StartDate) && at.Before(r.EndDate)
}
