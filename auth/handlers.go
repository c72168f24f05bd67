package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/bulletin-go/apperror"
)

// Handlers exposes the AuthService over HTTP.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates the HTTP handlers for authentication.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister handles POST /api/users/register.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.UserID == "" || req.Password == "" || req.Name == "" {
			WriteError(w, r, apperror.NewBadRequestError("user_id, password, and name are required", nil))
			return
		}

		account, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		// Account.HashedPassword is json:"-" so the stored hash never
		// leaves the server.
		WriteJSON(w, http.StatusCreated, account)
	}
}

// HandleLogin handles POST /api/users/login.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.UserID == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("user_id and password are required", nil))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleCheckUserID handles GET /api/users/check-id?user_id=.
func (h *Handlers) HandleCheckUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			WriteError(w, r, apperror.NewBadRequestError("user_id query parameter is required", nil))
			return
		}

		available, err := h.service.CheckUserIDAvailable(r.Context(), userID)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, CheckIDResponse{Available: available})
	}
}

// WriteJSON serializes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized apperror envelope.
// Errors that are not AppErrors are wrapped as internal failures.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
