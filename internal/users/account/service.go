// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management.

It provides functionalities for users to view and update their private
identity data. The package depends on the auth package for the User entity
and its repository; it layers profile-centric use cases on top.
*/
package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. Username and email changes
re-run the uniqueness checks.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict, not found, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates. Identity fields must stay unique platform-wide;
	// the unique indexes backstop these checks against races.
	if input.Username != nil && *input.Username != user.Username {
		if _, err := service.userRepository.FindByUsername(context, *input.Username); err == nil {
			return nil, apperr.Conflict("Username is already taken")
		}
		user.Username = *input.Username
	}

	// Apply delta updates
	if input.Email != nil && *input.Email != user.Email {
		if _, err := service.userRepository.FindByEmail(context, *input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = *input.Email
	}

	// Persist changes
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
