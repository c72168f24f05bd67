package auth

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys set by other packages.
type contextKey string

const subjectContextKey contextKey = "auth_subject"

// NewContextWithSubject returns a child context carrying the authenticated
// subject identifier.
func NewContextWithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subjectID)
}

// SubjectFromContext extracts the authenticated subject identifier bound by
// the middleware. The second return value reports whether a subject is
// present; anonymous requests have none.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subjectID, ok := ctx.Value(subjectContextKey).(string)
	return subjectID, ok
}
