package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/response"
	timeoffservice "github.com/staffhub-hr/timeoff-backend-go/internal/service/timeoff"
)

type TimeoffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListGiven(w http.ResponseWriter, r *http.Request)
	Answer(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TimeoffHandlerImpl struct {
	service *timeoffservice.Service
}

func NewTimeoffHandler(service *timeoffservice.Service) TimeoffHandler {
	return &TimeoffHandlerImpl{service: service}
}

// Create implements TimeoffHandler.
func (h *TimeoffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq timeoff.CreateRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.RequesterID = middleware.UserID(r)

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.CreateRequest(r.Context(), createReq)
	if err != nil {
		slog.Error("Create request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time-off request created", created)
}

// Get implements TimeoffHandler.
func (h *TimeoffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	request, err := h.service.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// ListMine implements TimeoffHandler.
func (h *TimeoffHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListMyRequests(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements TimeoffHandler.
func (h *TimeoffHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListPendingApprovals(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListGiven implements TimeoffHandler.
func (h *TimeoffHandlerImpl) ListGiven(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListApprovalsGiven(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Answer implements TimeoffHandler.
func (h *TimeoffHandlerImpl) Answer(w http.ResponseWriter, r *http.Request) {
	var answerReq timeoff.AnswerRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&answerReq); err != nil {
		slog.Error("Answer request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	answerReq.RequestID = chi.URLParam(r, "requestID")
	answerReq.ApproverID = middleware.UserID(r)

	if err := answerReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	answered, err := h.service.AnswerRequest(r.Context(), answerReq)
	if err != nil {
		slog.Error("Answer request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Answer recorded", answered)
}

// Update implements TimeoffHandler.
func (h *TimeoffHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq timeoff.UpdateRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "requestID")
	updateReq.UpdaterID = middleware.UserID(r)

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.UpdateRequest(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time-off request updated", updated)
}

// Delete implements TimeoffHandler.
func (h *TimeoffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	if err := h.service.DeleteRequest(r.Context(), requestID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time-off request deleted", nil)
}
