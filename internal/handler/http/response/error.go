package response

import (
	"errors"
	"net/http"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/auth"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		Forbidden(w, "Google login is not configured")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Team domain errors
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, team.ErrAlreadyMember):
		Conflict(w, "User is already a member of this team")
	case errors.Is(err, team.ErrNotMember):
		NotFound(w, "User is not a member of this team")

	// Time-off domain errors
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, timeoff.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, timeoff.ErrOverlappingRequest):
		Conflict(w, "Request overlaps an existing non-rejected request")
	case errors.Is(err, timeoff.ErrRequestClosed):
		Conflict(w, "Time-off request is already approved or rejected")
	case errors.Is(err, timeoff.ErrNotApprover):
		Forbidden(w, "You are not an approver of this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
