// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/pkg/uuidv7"
)

// Service implements user identity use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, handling password hashing and duplicate
identity detection. Both the username and the email must be unique across
the platform.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// Persist the user. The unique indexes on username/email backstop the
	// checks above against concurrent registrations; a collision surfaces
	// here as a Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

/*
Authenticate verifies a credential pair and resolves the account it names.

Description: Performs flexible lookup by email or username, then a
constant-time password comparison. Unknown-account and wrong-password
failures are indistinguishable to the caller: same error code, same
message, and equalized bcrypt cost.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: The authenticated account
  - error: Unauthorized on credential failure, or storage errors
*/
func (service *Service) Authenticate(context context.Context, input LoginInput) (*User, error) {

	// Flexible login: look up by Email first, then fall back to Username.
	user, err := service.userRepository.FindByEmail(context, input.Login)
	if err != nil && apperr.IsCode(err, "NOT_FOUND") {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			// Burn a bcrypt comparison so the unknown-account path costs the
			// same as the wrong-password path, then fail generically.
			sec.BurnPasswordCheck(input.Password)
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		// Storage failure: surface it as-is rather than masquerading as a
		// credential problem.
		return nil, err
	}

	// Verify password hash using constant-time comparison in bcrypt.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

// Identity derives the session-attachable identity from an account.
func Identity(user *User) sec.Identity {
	return sec.Identity{UserID: user.ID, Username: user.Username}
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before applying the new hash.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	return nil
}
