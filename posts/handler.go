package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/bulletin-go/apperror"
	"github.com/user/bulletin-go/auth"
)

// PostHandler exposes the PostService over HTTP.
type PostHandler struct {
	service *PostService
}

// NewPostHandler creates the HTTP handlers for posts.
func NewPostHandler(service *PostService) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterRoutes mounts the post routes on router. Writes require a valid
// token; reads run through the optional middleware so anonymous requests are
// served too.
func (h *PostHandler) RegisterRoutes(router chi.Router, validator *auth.TokenValidator) {
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator))
		r.Post("/", h.createPost)
		r.Put("/{id}", h.updatePost)
		r.Delete("/{id}", h.deletePost)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(validator))
		r.Get("/search", h.searchPosts)
		r.Get("/{id}", h.getPost)
	})
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authorization required", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if req.Title == "" || req.Content == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("title and content are required", nil))
		return
	}

	post, err := h.service.CreatePost(r.Context(), actorID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, post)
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authorization required", nil))
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if req.Title == "" || req.Content == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("title and content are required", nil))
		return
	}

	post, err := h.service.UpdatePost(r.Context(), postID, actorID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, post)
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authorization required", nil))
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, actorID); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) searchPosts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("keyword query parameter is required", nil))
		return
	}

	results, err := h.service.SearchPosts(r.Context(), keyword)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, results)
}

// postIDParam parses the {id} route parameter.
func postIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	postID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid post id", err)
	}
	return postID, nil
}
