// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/wanderstay/internal/platform/middleware"
	requestutil "github.com/taibuivan/wanderstay/internal/platform/request"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
	"github.com/taibuivan/wanderstay/internal/users/session"
	"github.com/taibuivan/wanderstay/pkg/pagination"
)

// Handler implements the HTTP layer for listing reviews.
//
// # Mounting
//
// Routes are mounted under /listings/{listingID}/reviews, so every endpoint
// here resolves the parent listing ID from the URL.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] configured with the review domain's endpoints.
//
// # Endpoints
//   - GET    /            : List a listing's reviews (public).
//   - POST   /            : Post a review (authenticated).
//   - DELETE /{reviewID}  : Delete an authored review (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Delete("/{reviewID}", handler.delete)
	})

	return router
}

// # Review Endpoints

/*
GET /api/v1/listings/{listingID}/reviews.

Description: Retrieves a paginated slice of a listing's reviews, newest first.

Response:
  - 200: []Review with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	listingID := requestutil.ID(request, "listingID")
	params := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.ListReviews(
		request.Context(), listingID, params.Limit, params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

type createReviewRequest struct {
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

/*
POST /api/v1/listings/{listingID}/reviews.

Description: Posts a review against the listing named in the URL. Fails with
404 when the listing has been deleted, even mid-request.

Request:
  - Body: createReviewRequest (Body, Rating 1-5)

Response:
  - 201: Review: The created review
  - 400: Validation failure
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Listing no longer exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Identity(request)
	listingID := requestutil.ID(request, "listingID")

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), actor, listingID, CreateInput{
		Body:   input.Body,
		Rating: input.Rating,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handle := session.FromContext(request.Context()); handle != nil {
		handle.PushFlash(request.Context(), session.FlashSuccess, "New review created!")
	}

	respond.Created(writer, review)
}

/*
DELETE /api/v1/listings/{listingID}/reviews/{reviewID}.

Description: Removes a review the actor authored and corrects the listing's
review counter in the same transaction.

Response:
  - 200: Success message
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Actor is not the author
  - 404: ErrNotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Identity(request)
	listingID := requestutil.ID(request, "listingID")
	reviewID := requestutil.ID(request, "reviewID")

	if err := handler.reviewService.DeleteReview(request.Context(), actor, listingID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handle := session.FromContext(request.Context()); handle != nil {
		handle.PushFlash(request.Context(), session.FlashSuccess, "Review deleted!")
	}

	respond.OK(writer, map[string]string{FieldMessage: "Review deleted"})
}
