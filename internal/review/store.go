// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// # Review Data Access

// Repository defines the data access contract for reviews.
type Repository interface {

	/*
		ListByListing returns a paginated slice of a listing's reviews and the total count.

		Parameters:
		  - context: context.Context
		  - listingID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Review: Newest reviews first
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListByListing(context context.Context, listingID string, limit, offset int) ([]*Review, int, error)

	/*
		FindByID retrieves a review by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Review, error)

	/*
		Create persists a new review and bumps the parent listing's counter.

		Both writes run inside one transaction, ordered so the parent row is
		locked first: a review can never be committed against a listing that
		a concurrent cascade delete is removing.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: apperr.NotFound if the listing no longer exists, or
		    transactional failures
	*/
	Create(context context.Context, review *Review) error

	/*
		Delete removes a review and decrements the parent listing's counter.

		Parameters:
		  - context: context.Context
		  - review: *Review (Hydrated entity naming both IDs)

		Returns:
		  - error: apperr.NotFound if the review was already gone, or
		    transactional failures
	*/
	Delete(context context.Context, review *Review) error
}
