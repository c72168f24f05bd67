package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/bulletin-go/apperror"
	"github.com/user/bulletin-go/auth"
)

// UserHandlers exposes profile operations over HTTP. All routes here sit
// behind the auth middleware, so the acting identity comes from the request
// context.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates the HTTP handlers for profile management.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile handles GET /api/users/profile.
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.SubjectFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authorization required", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateProfile handles PUT /api/users/profile.
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.SubjectFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authorization required", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Name == nil && req.ProfileImage == nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("no fields provided for update", nil))
			return
		}
		if req.Name != nil && *req.Name == "" {
			auth.WriteError(w, r, apperror.NewBadRequestError("name must not be empty", nil))
			return
		}

		profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
