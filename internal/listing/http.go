// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/wanderstay/internal/platform/middleware"
	requestutil "github.com/taibuivan/wanderstay/internal/platform/request"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
	"github.com/taibuivan/wanderstay/internal/users/session"
	"github.com/taibuivan/wanderstay/pkg/convert"
	"github.com/taibuivan/wanderstay/pkg/pagination"
	"github.com/taibuivan/wanderstay/pkg/query"
)

// Handler implements the HTTP layer for the listing catalogue.
type Handler struct {
	listingService *Service
}

// NewHandler constructs a new listing [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{listingService: service}
}

// Routes returns a [chi.Router] configured with the listing domain's endpoints.
//
// # Endpoints
//   - GET    /              : Browse the catalogue (public).
//   - GET    /{listingID}   : Listing detail by UUID or slug (public).
//   - POST   /              : Publish a new listing (authenticated).
//   - PATCH  /{listingID}   : Update an owned listing (authenticated).
//   - DELETE /{listingID}   : Delete an owned listing and its reviews (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/", handler.list)
	router.Get("/{listingID}", handler.get)

	// Owner mutations
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{listingID}", handler.update)
		r.Delete("/{listingID}", handler.delete)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/listings.

Description: Retrieves a paginated slice of the catalogue, optionally
filtered by free-text query, countries, owner, or price bounds.

Query:
  - q: string (matches title and location)
  - country: string (comma-separated for multiple countries)
  - owner_id: string
  - min_price, max_price: int (per night; 0 or malformed means unbounded)
  - page, limit: pagination

Response:
  - 200: []Listing with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		Query:     values.Get("q"),
		Countries: query.StringSlice(values.Get("country")),
		OwnerID:   values.Get("owner_id"),
		MinPrice:  convert.ToInt(values.Get("min_price")),
		MaxPrice:  convert.ToInt(values.Get("max_price")),
	}

	listings, total, err := handler.listingService.ListListings(
		request.Context(), filter, params.Limit, params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listings, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/listings/{listingID}.

Description: Retrieves a single listing by UUID or slug, with the owner's
username denormalized into the payload.

Response:
  - 200: Listing
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "listingID")

	listing, err := handler.listingService.GetListing(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, listing)
}

// # Mutation Endpoints

type createListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       int    `json:"price"`
	Location    string `json:"location"`
	Country     string `json:"country"`
}

/*
POST /api/v1/listings.

Description: Publishes a new listing owned by the authenticated user. A
blank image URL is replaced by the platform placeholder.

Request:
  - Body: createListingRequest

Response:
  - 201: Listing: The created listing
  - 400: Validation failure
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Identity(request)

	var input createListingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	listing, err := handler.listingService.CreateListing(request.Context(), actor, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handle := session.FromContext(request.Context()); handle != nil {
		handle.PushFlash(request.Context(), session.FlashSuccess, "New listing created!")
	}

	respond.Created(writer, listing)
}

type updateListingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Price       *int    `json:"price"`
	Location    *string `json:"location"`
	Country     *string `json:"country"`
}

/*
PATCH /api/v1/listings/{listingID}.

Description: Applies partial updates to an owned listing. Absent fields are
left untouched; a provided-but-blank image URL falls back to the platform
placeholder.

Request:
  - Body: updateListingRequest (Partial JSON)

Response:
  - 200: Listing: The updated listing
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Actor does not own the listing
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Identity(request)
	listingID := requestutil.ID(request, "listingID")

	var input updateListingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	listing, err := handler.listingService.UpdateListing(request.Context(), actor, listingID, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handle := session.FromContext(request.Context()); handle != nil {
		handle.PushFlash(request.Context(), session.FlashSuccess, "Listing updated!")
	}

	respond.OK(writer, listing)
}

/*
DELETE /api/v1/listings/{listingID}.

Description: Removes an owned listing and all of its reviews in one
transaction.

Response:
  - 200: Success message
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Actor does not own the listing
  - 404: ErrNotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Identity(request)
	listingID := requestutil.ID(request, "listingID")

	if err := handler.listingService.DeleteListing(request.Context(), actor, listingID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handle := session.FromContext(request.Context()); handle != nil {
		handle.PushFlash(request.Context(), session.FlashSuccess, "Listing deleted!")
	}

	respond.OK(writer, map[string]string{FieldMessage: "Listing deleted"})
}
