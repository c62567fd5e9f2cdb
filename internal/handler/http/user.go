package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/response"
	userservice "github.com/staffhub-hr/timeoff-backend-go/internal/service/user"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	service *userservice.Service
}

func NewUserHandler(service *userservice.Service) UserHandler {
	return &UserHandlerImpl{service: service}
}

// Me implements UserHandler.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := h.service.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}
