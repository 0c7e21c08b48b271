package service

import (
	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/store"
)

// AuthService answers credential logins against the user store.
type AuthService struct {
	users store.UserStore
}

// NewAuthService returns an auth service over the given user store.
func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login resolves the user matching the credential pair exactly. It fails
// with ErrBadCredentials when no user matches; a store-layer read fault is
// indistinguishable from a bad login.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.users.FindByCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}
