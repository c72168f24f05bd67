// Package auth implements the credential and session-issuance core: password
// hashing and verification, account storage, login verification, bearer token
// issuance and validation, and the request middleware that binds a validated
// token to an acting identity.
package auth

import "time"

// Account represents a registered user. The user identifier is unique and
// immutable once set; the password field only ever holds the bcrypt hash,
// never the plaintext, and is excluded from JSON serialization.
type Account struct {
	UserID         string    `json:"user_id"`
	HashedPassword string    `json:"-"`
	Name           string    `json:"name"`
	ProfileImage   *string   `json:"profile_image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
