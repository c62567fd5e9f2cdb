package team

import (
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/validator"
)

type CreateTeamRequest struct {
	Name     string `json:"team_name"`
	LeaderID string `json:"leader_id"`
}

func (r *CreateTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_name",
			Message: "team_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "team_name",
			Message: "team_name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.LeaderID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leader_id",
			Message: "leader_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTeamRequest struct {
	ID       string  `json:"team_id"`
	Name     *string `json:"team_name,omitempty"`
	LeaderID *string `json:"leader_id,omitempty"`
}

func (r *UpdateTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id is required",
		})
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "team_name",
				Message: "team_name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "team_name",
				Message: "team_name must not exceed 255 characters",
			})
		}
	}
	if r.LeaderID != nil && validator.IsEmpty(*r.LeaderID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leader_id",
			Message: "leader_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MembershipRequest struct {
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

func (r *MembershipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id is required",
		})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TeamResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LeaderID   string    `json:"leader_id"`
	LeaderName *string   `json:"leader_name,omitempty"`
	MemberIDs  []string  `json:"member_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(t Team) TeamResponse {
	members := t.MemberIDs
	if members == nil {
		members = []string{}
	}
	return TeamResponse{
		ID:         t.ID,
		Name:       t.Name,
		LeaderID:   t.LeaderID,
		LeaderName: t.LeaderName,
		MemberIDs:  members,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
