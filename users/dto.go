// Package users provides user profile management: fetching and updating the
// display name and profile image of the authenticated account.
package users

import "time"

// ProfileResponse is the client-facing view of an account.
type ProfileResponse struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}
