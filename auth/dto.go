package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	UserID       string  `json:"user_id"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// TokenResponse is returned to the client on successful login.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	// ExpiresIn is the Unix timestamp at which the token stops being valid.
	ExpiresIn int64 `json:"expires_in"`
}

// CheckIDResponse reports user identifier availability.
type CheckIDResponse struct {
	Available bool `json:"available"`
}
