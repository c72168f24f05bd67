package auth

import (
	"context"
	"log"

	"github.com/user/bulletin-go/apperror"
)

// invalidCredentials is the single externally-visible login failure. An
// unknown user id and a wrong password intentionally produce the identical
// error so callers cannot enumerate registered accounts; internal logs keep
// the distinction.
const invalidCredentials = "invalid credentials"

// AuthService orchestrates the account store, the password hasher, and the
// token issuer into the registration and login operations.
type AuthService struct {
	store  AccountStore
	hasher PasswordHasher
	issuer *TokenIssuer
}

// NewAuthService creates an AuthService with its collaborators injected.
func NewAuthService(store AccountStore, hasher PasswordHasher, issuer *TokenIssuer) *AuthService {
	return &AuthService{store: store, hasher: hasher, issuer: issuer}
}

// Register creates a new account. The plaintext password is hashed before
// anything is stored; a duplicate user identifier yields a Conflict error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	exists, err := s.store.ExistsByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("user id already exists", nil)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &Account{
		UserID:         req.UserID,
		HashedPassword: hashed,
		Name:           req.Name,
		ProfileImage:   req.ProfileImage,
	}

	// The store's unique constraint settles the race between two concurrent
	// registrations that both passed the existence check.
	return s.store.Create(ctx, account)
}

// Login verifies the submitted credentials and, on success, issues a bearer
// token bound to the account's user identifier.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	account, err := s.verifyLogin(ctx, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(account.UserID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresAt.Unix(),
	}, nil
}

// verifyLogin looks up the account and checks the password hash. Both an
// unknown user and a mismatched password return the same generic failure.
func (s *AuthService) verifyLogin(ctx context.Context, userID, password string) (*Account, error) {
	account, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			log.Printf("login rejected: unknown user id %q", userID)
			return nil, apperror.NewAuthError(invalidCredentials, nil)
		}
		// Store unavailability is a server-side failure, never conflated
		// with an auth failure.
		return nil, err
	}

	if !s.hasher.Verify(password, account.HashedPassword) {
		log.Printf("login rejected: password mismatch for user id %q", userID)
		return nil, apperror.NewAuthError(invalidCredentials, nil)
	}

	return account, nil
}

// CheckUserIDAvailable reports whether a user identifier is still free.
func (s *AuthService) CheckUserIDAvailable(ctx context.Context, userID string) (bool, error) {
	exists, err := s.store.ExistsByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
