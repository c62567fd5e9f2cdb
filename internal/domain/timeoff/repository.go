package timeoff

import (
	"context"
	"time"
)

// UpdateRequestFields is the partial update applied by administrative edits.
type UpdateRequestFields struct {
	ID          string
	Type        *RequestType
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	UpdatedBy   string
}

// RequestRepository - interface for the timeoff_requests and request_approvers
// tables. Implementations return the request with its approver rows attached,
// position-ordered.
type RequestRepository interface {
	// Create persists the request and its approver rows atomically.
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// GetByIDForUpdate locks the request row for the duration of the enclosing
	// transaction, serializing concurrent answers to the same request.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	GetByRequesterID(ctx context.Context, requesterID string) ([]Request, error)
	// ListPendingForApprover returns open requests the user still has to answer.
	ListPendingForApprover(ctx context.Context, approverID string) ([]Request, error)
	// ListApprovedForApprover returns approved requests the user was an approver of.
	ListApprovedForApprover(ctx context.Context, approverID string) ([]Request, error)
	// HasApprovedLeaveAt reports whether the user has an approved request whose
	// interval contains the instant at.
	HasApprovedLeaveAt(ctx context.Context, userID string, at time.Time) (bool, error)
	Update(ctx context.Context, fields UpdateRequestFields) error
	UpdateStatus(ctx context.Context, id string, status RequestStatus, updatedBy *string) error
	// Touch stamps updated_by and updated_at without changing anything else.
	Touch(ctx context.Context, id, updatedBy string) error
	// MarkApproved records one approver's consent.
	MarkApproved(ctx context.Context, requestID, approverID string) error
	Delete(ctx context.Context, id string) error
}
