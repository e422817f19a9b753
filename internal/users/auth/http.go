// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to login and logout.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Orchestrates the session manager on identity transitions.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/middleware"
	requestutil "github.com/taibuivan/wanderstay/internal/platform/request"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
	"github.com/taibuivan/wanderstay/internal/platform/validate"
	"github.com/taibuivan/wanderstay/internal/users/session"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Logout, Password changes).
type Handler struct {
	authService *Service
	sessions    *session.Manager
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{authService: service, sessions: sessions}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and logs it in.
//   - POST /login    : Authenticates and attaches the identity to the session.
//   - POST /logout   : Detaches the identity from the session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Logout is public on purpose: logging out an anonymous session is a no-op.
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, persists the
new account, and immediately attaches its identity to the session so the
member is logged in right after signup.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Auto-login: attach the fresh identity to a regenerated session.
	handle := session.FromContext(request.Context())
	if handle != nil {
		newHandle, err := handler.sessions.Attach(request.Context(), handle, Identity(user))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		session.WriteCookie(writer, newHandle)
		newHandle.PushFlash(request.Context(), session.FlashSuccess, "Welcome to Wanderstay!")
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes an authenticated session.

POST /api/v1/auth/login

Description: Verifies credentials and binds the resolved identity to a
regenerated session. The session cookie on the response names the new
session; the pre-login cookie value is invalidated.

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: User: Authenticated user profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Authenticate(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handle := session.FromContext(request.Context())
	if handle == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	newHandle, err := handler.sessions.Attach(request.Context(), handle, Identity(user))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.WriteCookie(writer, newHandle)
	newHandle.PushFlash(request.Context(), session.FlashSuccess, "Welcome back to Wanderstay!")

	respond.OK(writer, map[string]any{
		FieldUser: user,
	})
}

/*
Logout detaches the identity from the current session.

POST /api/v1/auth/logout

Description: The session record itself survives so that the farewell flash
message can still be delivered on the next request. Logging out an already
anonymous session succeeds silently.

Response:
  - 200: Success: Identity detached
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handle := session.FromContext(request.Context())
	if handle == nil {
		respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
		return
	}

	wasAuthenticated := handle.Identity() != nil

	if err := handler.sessions.Clear(request.Context(), handle); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if wasAuthenticated {
		handle.PushFlash(request.Context(), session.FlashSuccess, "You are logged out!")
	}

	respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying a new one.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 401: ErrUnauthorized: Wrong current password or authentication required
  - 400: ErrInvalidJSON: Weak password or validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		userID,
		input.CurrentPassword,
		input.NewPassword,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}
