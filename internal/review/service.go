// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/internal/platform/validate"
	"github.com/taibuivan/wanderstay/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business rules for reviews.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Review Browsing

/*
ListReviews retrieves a paginated slice of a listing's reviews.

Parameters:
  - context: context.Context
  - listingID: string
  - limit, offset: int

Returns:
  - []*Review: Newest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListReviews(context context.Context, listingID string, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListByListing(context, listingID, limit, offset)
}

// # Review Lifecycle

// CreateInput holds the data required to post a review.
type CreateInput struct {
	Body   string
	Rating int
}

/*
CreateReview validates and persists a new review authored by the actor.

Description: The store-level transaction guarantees the parent listing still
exists at commit time; posting against a concurrently deleted listing
surfaces as NotFound with nothing persisted.

Parameters:
  - context: context.Context
  - actor: *sec.Identity (Must be non-nil)
  - listingID: string
  - input: CreateInput

Returns:
  - *Review: The created review
  - error: Unauthorized, validation, NotFound, or persistence failures
*/
func (service *Service) CreateReview(context context.Context, actor *sec.Identity, listingID string, input CreateInput) (*Review, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, MaxBodyLength).
		Range(FieldRating, input.Rating, MinRating, MaxRating)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		ID:             uuidv7.New(),
		ListingID:      listingID,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Body:           input.Body,
		Rating:         input.Rating,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("listing_id", listingID),
		slog.String("author_id", actor.UserID),
	)

	return review, nil
}

/*
DeleteReview removes a review authored by the actor.

Description: The review must belong to the listing named in the URL; a
mismatched pair reports NotFound so review IDs cannot be probed across
listings. The guard runs after the fetch, and only the author passes it.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - listingID: string
  - reviewID: string

Returns:
  - error: Unauthorized, Forbidden, NotFound, or persistence failures
*/
func (service *Service) DeleteReview(context context.Context, actor *sec.Identity, listingID, reviewID string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return err
	}

	// The URL scopes reviews under their listing; a mismatch is treated the
	// same as a missing review.
	if review.ListingID != listingID {
		return apperr.NotFound("Review")
	}

	if !sec.CanMutate(actor, review) {
		return apperr.Forbidden("You did not write this review")
	}

	if err := service.repo.Delete(context, review); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.String("review_id", reviewID),
		slog.String("listing_id", listingID),
		slog.String("author_id", actor.UserID),
	)

	return nil
}
