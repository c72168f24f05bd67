package auth

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

// newTestRouter wires the auth handlers the way main does, against an
// in-memory store.
func newTestRouter() (chi.Router, *TokenValidator) {
	service := newTestService(newMemStore())
	handlers := NewHandlers(service)
	validator := NewTokenValidator(testSecret)

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", handlers.HandleRegister())
		r.Post("/login", handlers.HandleLogin())
		r.Get("/check-id", handlers.HandleCheckUserID())
	})
	return r, validator
}

func TestHandleRegister(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"S3cret!","name":"Alice"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.user_id", "alice")).
		Assert(jsonpath.Equal("$.name", "Alice")).
		Assert(jsonpath.NotPresent("$.password")).
		End()
}

func TestHandleRegister_MissingFields(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestHandleRegister_Duplicate(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"S3cret!","name":"Alice"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"other","name":"Impostor"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Present("$.error")).
		End()
}

func TestHandleLogin(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"S3cret!","name":"Alice"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(router).
		Post("/api/users/login").
		JSON(`{"user_id":"alice","password":"S3cret!"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		Assert(jsonpath.Equal("$.token_type", "Bearer")).
		End()
}

func TestHandleLogin_UniformFailure(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"S3cret!","name":"Alice"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Wrong password and unknown user return the identical denial.
	apitest.New().
		Handler(router).
		Post("/api/users/login").
		JSON(`{"user_id":"alice","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "invalid credentials")).
		End()

	apitest.New().
		Handler(router).
		Post("/api/users/login").
		JSON(`{"user_id":"ghost","password":"anything"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "invalid credentials")).
		End()
}

func TestHandleCheckUserID(t *testing.T) {
	router, _ := newTestRouter()

	apitest.New().
		Handler(router).
		Get("/api/users/check-id").
		Query("user_id", "alice").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.available", true)).
		End()

	apitest.New().
		Handler(router).
		Post("/api/users/register").
		JSON(`{"user_id":"alice","password":"S3cret!","name":"Alice"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(router).
		Get("/api/users/check-id").
		Query("user_id", "alice").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.available", false)).
		End()
}
