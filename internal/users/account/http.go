// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/wanderstay/internal/platform/request"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
	"github.com/taibuivan/wanderstay/internal/platform/validate"
	"github.com/taibuivan/wanderstay/internal/users/auth"
	"github.com/taibuivan/wanderstay/pkg/pointer"
)

// Handler implements the HTTP layer for user profile management.
//
// # Security
//
// All endpoints in this handler require an active authentication session
// provided by the RequireAuth middleware.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

/*
PATCH /api/v1/me.

Description: Applies partial updates to the authenticated user's profile.
Absent fields are left untouched.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Username or Email already taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, pointer.Val(input.Username)).
			MinLen(auth.FieldUsername, pointer.Val(input.Username), auth.MinUsernameLength).
			MaxLen(auth.FieldUsername, pointer.Val(input.Username), auth.MaxUsernameLength)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, pointer.Val(input.Email)).
			Email(auth.FieldEmail, pointer.Val(input.Email))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
