// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/internal/platform/validate"
	"github.com/taibuivan/wanderstay/pkg/pointer"
	"github.com/taibuivan/wanderstay/pkg/slug"
	"github.com/taibuivan/wanderstay/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business rules for the listing catalogue.
//
// All mutations pass through the ownership guard: anonymous actors are
// rejected outright, and authenticated non-owners are refused without the
// target listing being touched.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new listing [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Catalogue Browsing

/*
ListListings retrieves a paginated and filtered slice of the catalogue.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Listing: List of listings
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListListings(context context.Context, filter Filter, limit, offset int) ([]*Listing, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetListing retrieves a listing by its UUID or Slug identifier.

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *Listing: Hydrated listing entity
  - error: apperr.NotFound if missing
*/
func (service *Service) GetListing(context context.Context, identifier string) (*Listing, error) {

	// Discriminator: ID vs Slug
	// UUIDs have a fixed length of 36 characters in standard hyphenated format.
	if len(identifier) == 36 {
		return service.repo.FindByID(context, identifier)
	}

	return service.repo.FindBySlug(context, identifier)
}

// # Listing Lifecycle

// CreateInput holds the data required to publish a new listing.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
	Price       int
	Location    string
	Country     string
}

/*
CreateListing validates and persists a new listing owned by the actor.

Description: The image reference is coerced at this write boundary: a blank
or whitespace-only URL is replaced with [DefaultImageURL] before the entity
is persisted, so storage never holds a listing without a renderable image.

Parameters:
  - context: context.Context
  - actor: *sec.Identity (Must be non-nil)
  - input: CreateInput

Returns:
  - *Listing: The created listing
  - error: Unauthorized, validation, or persistence failures
*/
func (service *Service) CreateListing(context context.Context, actor *sec.Identity, input CreateInput) (*Listing, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	imageURL := coerceImageURL(input.ImageURL)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		MaxLen(FieldDescription, input.Description, MaxDescriptionLength).
		MaxLen(FieldLocation, input.Location, MaxLocationLength).
		MaxLen(FieldCountry, input.Country, MaxLocationLength).
		URL(FieldImageURL, imageURL).
		Custom(FieldPrice, input.Price < 0, "must not be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	listing := &Listing{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		ImageURL:    imageURL,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
		OwnerID:     actor.UserID,
	}

	if err := service.repo.Create(context, listing); err != nil {
		return nil, err
	}

	service.logger.Info("listing_created",
		slog.String("listing_id", listing.ID),
		slog.String("owner_id", actor.UserID),
	)

	return listing, nil
}

// UpdateInput holds the mutable subset of listing fields. Nil fields are
// left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Price       *int
	Location    *string
	Country     *string
}

/*
UpdateListing applies a partial set of changes to an owned listing.

Description: The guard runs after the fetch so a missing listing reports
NotFound rather than leaking whether it exists behind a permission wall.
A provided-but-blank image URL is coerced to [DefaultImageURL], same as on
create.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - id: string
  - input: UpdateInput

Returns:
  - *Listing: The updated listing
  - error: Unauthorized, Forbidden, NotFound, validation, or persistence failures
*/
func (service *Service) UpdateListing(context context.Context, actor *sec.Identity, id string, input UpdateInput) (*Listing, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	listing, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !sec.CanMutate(actor, listing) {
		return nil, apperr.Forbidden("You do not own this listing")
	}

	// Apply delta updates
	if input.Title != nil {
		listing.Title = *input.Title
		listing.Slug = slug.From(*input.Title)
	}

	if input.Description != nil {
		listing.Description = *input.Description
	}

	if input.ImageURL != nil {
		listing.ImageURL = coerceImageURL(*input.ImageURL)
	}

	if input.Price != nil {
		listing.Price = *input.Price
	}

	if input.Location != nil {
		listing.Location = *input.Location
	}

	if input.Country != nil {
		listing.Country = *input.Country
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, listing.Title).
		MaxLen(FieldTitle, listing.Title, MaxTitleLength).
		MaxLen(FieldDescription, listing.Description, MaxDescriptionLength).
		MaxLen(FieldLocation, listing.Location, MaxLocationLength).
		MaxLen(FieldCountry, listing.Country, MaxLocationLength).
		URL(FieldImageURL, listing.ImageURL).
		Custom(FieldPrice, pointer.Val(input.Price) < 0, "must not be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, listing); err != nil {
		return nil, err
	}

	service.logger.Info("listing_updated",
		slog.String("listing_id", listing.ID),
		slog.String("owner_id", actor.UserID),
	)

	return listing, nil
}

/*
DeleteListing removes an owned listing together with all of its reviews.

Description: Both phases of the cascade run inside one transaction in the
store. If a concurrent delete got there first, the loser observes NotFound
and nothing is modified.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - id: string

Returns:
  - error: Unauthorized, Forbidden, NotFound, or persistence failures
*/
func (service *Service) DeleteListing(context context.Context, actor *sec.Identity, id string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	listing, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if !sec.CanMutate(actor, listing) {
		return apperr.Forbidden("You do not own this listing")
	}

	reviewsRemoved, err := service.repo.DeleteCascade(context, id)
	if err != nil {
		return err
	}

	service.logger.Info("listing_deleted",
		slog.String("listing_id", id),
		slog.String("owner_id", actor.UserID),
		slog.Int("reviews_removed", reviewsRemoved),
	)

	return nil
}

// coerceImageURL substitutes the default placeholder for blank image references.
func coerceImageURL(imageURL string) string {
	if strings.TrimSpace(imageURL) == "" {
		return DefaultImageURL
	}
	return imageURL
}
