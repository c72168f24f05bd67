package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/user/bulletin-go/apperror"
)

// bearerToken extracts the token from an Authorization header of the form
// "Bearer {token}". The empty string means no usable credential was sent.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth returns middleware that rejects requests lacking a valid
// bearer token before they reach business logic. The three internal
// validation failures are logged distinctly but all collapse into the same
// generic unauthorized response.
func RequireAuth(validator *TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, r, apperror.NewAuthError("authorization required", nil))
				return
			}

			subjectID, err := validator.Validate(token)
			if err != nil {
				log.Printf("token rejected on %s %s: %v", r.Method, r.URL.Path, err)
				WriteError(w, r, apperror.NewAuthError("invalid or expired token", err))
				return
			}

			ctx := NewContextWithSubject(r.Context(), subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware for routes that permit anonymous access.
// A request with no bearer token passes through with no identity. A request
// that does present a token gets it validated exactly as RequireAuth does:
// a valid one binds the subject, an invalid one is rejected with the same
// generic unauthorized response.
func OptionalAuth(validator *TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			subjectID, err := validator.Validate(token)
			if err != nil {
				log.Printf("token rejected on %s %s: %v", r.Method, r.URL.Path, err)
				WriteError(w, r, apperror.NewAuthError("invalid or expired token", err))
				return
			}

			ctx := NewContextWithSubject(r.Context(), subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
