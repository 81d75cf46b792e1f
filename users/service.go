// Package users exposes the authenticated user's own profile. It reuses the
// auth package's user store and projection, so the password hash can never
// leak through this surface either.
package users

import (
	"context"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/auth"
)

// Service provides read access to user profiles.
type Service struct {
	store auth.UserStore
}

// NewService creates a Service with its store injected.
func NewService(store auth.UserStore) *Service {
	return &Service{store: store}
}

// GetProfile returns the projection of the user with the given id.
func (s *Service) GetProfile(ctx context.Context, userID int) (*auth.UserResponse, error) {
	if err := auth.RequireAuth(userID); err != nil {
		return nil, err
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to get user", err)
	}
	if user == nil {
		// The token outlived the account.
		return nil, apperror.NewNotFoundError("User not found", nil)
	}

	resp := user.Response()
	return &resp, nil
}
