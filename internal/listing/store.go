// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import "context"

// # Listing Data Access

// Repository defines the data access contract for listings.
type Repository interface {

	/*
		List returns a filtered, paginated slice of listings and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Search query, countries, owner, price bounds)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Listing: Slice of matching listings
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Listing, int, error)

	/*
		FindByID retrieves a listing by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Listing: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Listing, error)

	/*
		FindBySlug retrieves a listing by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Listing: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Listing, error)

	/*
		Create persists a new listing to the store.

		Parameters:
		  - context: context.Context
		  - listing: *Listing

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, listing *Listing) error

	/*
		Update modifies an existing listing's metadata.

		Parameters:
		  - context: context.Context
		  - listing: *Listing

		Returns:
		  - error: apperr.NotFound if the row vanished, or persistence failures
	*/
	Update(context context.Context, listing *Listing) error

	/*
		DeleteCascade removes a listing and all of its reviews atomically.

		Both phases run inside a single transaction: either the listing and
		every dependent review are gone, or nothing is.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - int: Number of reviews removed alongside the listing
		  - error: apperr.NotFound if the listing no longer exists, or
		    transactional failures
	*/
	DeleteCascade(context context.Context, id string) (int, error)
}
