package users

import (
	"context"

	"github.com/user/bulletin-go/auth"
)

// UserService implements profile operations on top of the account store.
// Unlike the login path, profile lookups surface a distinct not-found error;
// the uniform-failure policy applies only at the authentication boundary.
type UserService struct {
	store auth.AccountStore
}

// NewUserService creates a UserService backed by the given account store.
func NewUserService(store auth.AccountStore) *UserService {
	return &UserService{store: store}
}

// GetProfile retrieves the profile of the account with the given user id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	account, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(account), nil
}

// UpdateProfile applies the non-nil fields of req to the account. The user
// identifier and the stored credential hash are never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	account, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.ProfileImage != nil {
		account.ProfileImage = req.ProfileImage
	}

	updated, err := s.store.Update(ctx, account)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(updated), nil
}

func toProfileResponse(account *auth.Account) *ProfileResponse {
	return &ProfileResponse{
		UserID:       account.UserID,
		Name:         account.Name,
		ProfileImage: account.ProfileImage,
		CreatedAt:    account.CreatedAt,
	}
}
