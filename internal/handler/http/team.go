package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/response"
	teamservice "github.com/staffhub-hr/timeoff-backend-go/internal/service/team"
)

type TeamHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

type TeamHandlerImpl struct {
	service *teamservice.Service
}

func NewTeamHandler(service *teamservice.Service) TeamHandler {
	return &TeamHandlerImpl{service: service}
}

// Create implements TeamHandler.
func (h *TeamHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq team.CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create team decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create team service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Team created", created)
}

// Get implements TeamHandler.
func (h *TeamHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	t, err := h.service.Get(r.Context(), teamID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// List implements TeamHandler.
func (h *TeamHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, teams)
}

// ListMine implements TeamHandler.
func (h *TeamHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.ListForUser(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, teams)
}

// Update implements TeamHandler.
func (h *TeamHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq team.UpdateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update team decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "teamID")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update team service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Team updated", updated)
}

// Delete implements TeamHandler.
func (h *TeamHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	if err := h.service.Delete(r.Context(), teamID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Team deleted", nil)
}

// AddMember implements TeamHandler.
func (h *TeamHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var membershipReq team.MembershipRequest

	if err := json.NewDecoder(r.Body).Decode(&membershipReq); err != nil {
		slog.Error("Add member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	membershipReq.TeamID = chi.URLParam(r, "teamID")

	if err := membershipReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.service.AddMember(r.Context(), membershipReq); err != nil {
		slog.Error("Add member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member added", nil)
}

// RemoveMember implements TeamHandler.
func (h *TeamHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	membershipReq := team.MembershipRequest{
		TeamID: chi.URLParam(r, "teamID"),
		UserID: chi.URLParam(r, "userID"),
	}

	if err := membershipReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.service.RemoveMember(r.Context(), membershipReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed", nil)
}
