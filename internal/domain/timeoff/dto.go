package timeoff

import (
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	RequesterID string `json:"-"`
	Type        string `json:"type"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidRequestType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: paid, unpaid, sick_leave",
		})
	}
	if len(r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 1000 characters",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AnswerRequestRequest struct {
	RequestID  string `json:"-"`
	ApproverID string `json:"-"`
	Approved   *bool  `json:"approved"`
	Reason     string `json:"reason,omitempty"`
}

func (r *AnswerRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if r.Approved == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "approved",
			Message: "approved is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequestRequest struct {
	ID          string  `json:"-"`
	UpdaterID   string  `json:"-"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (r *UpdateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if r.Type != nil && !ValidRequestType(*r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: paid, unpaid, sick_leave",
		})
	}
	if r.Description != nil && len(*r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 1000 characters",
		})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalResponse struct {
	ApproverID string     `json:"approver_id"`
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

type RequestResponse struct {
	ID            string             `json:"id"`
	RequesterID   string             `json:"requester_id"`
	RequesterName *string            `json:"requester_name,omitempty"`
	Type          RequestType        `json:"type"`
	Description   string             `json:"description"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Status        RequestStatus      `json:"status"`
	Approvers     []ApprovalResponse `json:"approvers"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func ToResponse(r Request) RequestResponse {
	approvers := make([]ApprovalResponse, len(r.Approvers))
	for i, a := range r.Approvers {
		approvers[i] = ApprovalResponse{
			ApproverID: a.ApproverID,
			Approved:   a.Approved,
			ApprovedAt: a.ApprovedAt,
		}
	}
	return RequestResponse{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Type:          r.Type,
		Description:   r.Description,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Status:        r.Status,
		Approvers:     approvers,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ToResponses(requests []Request) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = ToResponse(r)
	}
	return responses
}
