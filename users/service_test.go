package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bulletin-go/apperror"
	"github.com/user/bulletin-go/auth"
)

// fakeStore is a minimal in-memory auth.AccountStore for profile tests.
type fakeStore struct {
	accounts map[string]auth.Account
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[string]auth.Account)}
}

func (s *fakeStore) ExistsByUserID(_ context.Context, userID string) (bool, error) {
	_, ok := s.accounts[userID]
	return ok, nil
}

func (s *fakeStore) FindByUserID(_ context.Context, userID string) (*auth.Account, error) {
	account, ok := s.accounts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("account '%s' not found", userID), nil)
	}
	return &account, nil
}

func (s *fakeStore) Create(_ context.Context, account *auth.Account) (*auth.Account, error) {
	if _, ok := s.accounts[account.UserID]; ok {
		return nil, apperror.NewConflictError("user id already exists", nil)
	}
	account.CreatedAt = time.Now()
	s.accounts[account.UserID] = *account
	return account, nil
}

func (s *fakeStore) Update(_ context.Context, account *auth.Account) (*auth.Account, error) {
	existing, ok := s.accounts[account.UserID]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("account '%s' not found", account.UserID), nil)
	}
	existing.Name = account.Name
	existing.ProfileImage = account.ProfileImage
	s.accounts[account.UserID] = existing
	account.CreatedAt = existing.CreatedAt
	return account, nil
}

func seedAccount(t *testing.T, store *fakeStore, userID, name string) {
	t.Helper()
	_, err := store.Create(context.Background(), &auth.Account{
		UserID:         userID,
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
		Name:           name,
	})
	require.NoError(t, err)
}

func TestGetProfile(t *testing.T) {
	store := newFakeStore()
	seedAccount(t, store, "alice", "Alice")
	service := NewUserService(store)

	profile, err := service.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.UserID)
	assert.Equal(t, "Alice", profile.Name)
	assert.Nil(t, profile.ProfileImage)
}

func TestGetProfile_NotFound(t *testing.T) {
	service := NewUserService(newFakeStore())

	// Profile lookups keep a distinct not-found signal; only the login
	// path collapses it into a generic denial.
	_, err := service.GetProfile(context.Background(), "ghost")
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeStore()
	seedAccount(t, store, "alice", "Alice")
	service := NewUserService(store)
	ctx := context.Background()

	newName := "Alice B."
	image := "https://img.example.com/alice.png"
	profile, err := service.UpdateProfile(ctx, "alice", &UpdateProfileRequest{
		Name:         &newName,
		ProfileImage: &image,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", profile.Name)
	require.NotNil(t, profile.ProfileImage)
	assert.Equal(t, image, *profile.ProfileImage)

	// Partial update: only the image changes, the name stays.
	other := "https://img.example.com/alice2.png"
	profile, err = service.UpdateProfile(ctx, "alice", &UpdateProfileRequest{ProfileImage: &other})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", profile.Name)
	assert.Equal(t, other, *profile.ProfileImage)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	service := NewUserService(newFakeStore())

	name := "Ghost"
	_, err := service.UpdateProfile(context.Background(), "ghost", &UpdateProfileRequest{Name: &name})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateProfile_NeverTouchesCredential(t *testing.T) {
	store := newFakeStore()
	seedAccount(t, store, "alice", "Alice")
	service := NewUserService(store)
	ctx := context.Background()

	before, err := store.FindByUserID(ctx, "alice")
	require.NoError(t, err)

	newName := "Alice B."
	_, err = service.UpdateProfile(ctx, "alice", &UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)

	after, err := store.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before.HashedPassword, after.HashedPassword)
	assert.Equal(t, before.UserID, after.UserID)
}
