package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/user/bulletin-go/apperror"
)

// memStore is an in-memory AccountStore for tests. It mirrors the database
// store's semantics: copies in and out, conflict on duplicate create, and an
// optional forced failure to simulate an unavailable store.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]Account
	failWith error
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]Account)}
}

func (s *memStore) ExistsByUserID(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	_, ok := s.accounts[userID]
	return ok, nil
}

func (s *memStore) FindByUserID(_ context.Context, userID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	account, ok := s.accounts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("account '%s' not found", userID), nil)
	}
	return &account, nil
}

func (s *memStore) Create(_ context.Context, account *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if _, ok := s.accounts[account.UserID]; ok {
		return nil, apperror.NewConflictError("user id already exists", nil)
	}
	account.CreatedAt = time.Now()
	s.accounts[account.UserID] = *account
	return account, nil
}

func (s *memStore) Update(_ context.Context, account *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
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
