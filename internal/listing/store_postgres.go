// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing provides the PostgreSQL implementation for the catalogue's data access.

It leans on PostgreSQL features to keep the API fast and the data consistent:
  - Window Functions: Calculates total result counts without a second 'COUNT' query.
  - ACID Transactions: Guarantees that a listing and its reviews disappear together.
  - Denormalized Counters: Maintains reviewcount on the listing row itself.
*/
package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/wanderstay/internal/platform/database/schema"
	"github.com/taibuivan/wanderstay/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed listing store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Listing Retrieval

/*
List returns a filtered and paginated list of listings.

Description: Uses ILIKE for catalogue search and COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Listing: Slice of matching listings
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Listing, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s,
			l.%s, l.%s, l.%s, l.%s,
			COUNT(*) OVER() as total
		FROM %s l
		WHERE TRUE
	`,
		schema.CoreListing.ID,
		schema.CoreListing.Title,
		schema.CoreListing.Slug,
		schema.CoreListing.Description,
		schema.CoreListing.ImageURL,
		schema.CoreListing.Price,
		schema.CoreListing.Location,
		schema.CoreListing.Country,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.OwnerID,
		schema.CoreListing.CreatedAt,
		schema.CoreListing.UpdatedAt,
		schema.CoreListing.Table,
	))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (l.%s ILIKE $%d OR l.%s ILIKE $%d)",
			schema.CoreListing.Title, argID, schema.CoreListing.Location, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if len(filter.Countries) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND l.%s ILIKE ANY($%d)", schema.CoreListing.Country, argID))
		args = append(args, filter.Countries)
		argID++
	}

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND l.%s = $%d", schema.CoreListing.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	if filter.MinPrice > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND l.%s >= $%d", schema.CoreListing.Price, argID))
		args = append(args, filter.MinPrice)
		argID++
	}

	if filter.MaxPrice > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND l.%s <= $%d", schema.CoreListing.Price, argID))
		args = append(args, filter.MaxPrice)
		argID++
	}

	// UUIDv7 primary keys are time-sortable, so ordering by ID is newest-last.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY l.%s DESC LIMIT $%d OFFSET $%d",
		schema.CoreListing.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_listings")
	}
	defer rows.Close()

	var listings []*Listing
	var total int
	for rows.Next() {
		listing := &Listing{}
		err := rows.Scan(
			&listing.ID, &listing.Title, &listing.Slug, &listing.Description,
			&listing.ImageURL, &listing.Price, &listing.Location, &listing.Country,
			&listing.ReviewCount, &listing.OwnerID, &listing.CreatedAt, &listing.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_listing")
		}
		listings = append(listings, listing)
	}

	return listings, total, nil
}

/*
FindByID retrieves a single listing record by its primary key.

Description: Joins the owner's account row to denormalize the username for
detail views.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Listing: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Listing, error) {
	query := fmt.Sprintf(`
		SELECT
			l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s,
			l.%s, l.%s, u.%s, l.%s, l.%s
		FROM %s l
		JOIN %s u ON l.%s = u.%s
		WHERE l.%s = $1
	`,
		schema.CoreListing.ID,
		schema.CoreListing.Title,
		schema.CoreListing.Slug,
		schema.CoreListing.Description,
		schema.CoreListing.ImageURL,
		schema.CoreListing.Price,
		schema.CoreListing.Location,
		schema.CoreListing.Country,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.OwnerID,
		schema.UserAccount.Username,
		schema.CoreListing.CreatedAt,
		schema.CoreListing.UpdatedAt,
		schema.CoreListing.Table,
		schema.UserAccount.Table,
		schema.CoreListing.OwnerID,
		schema.UserAccount.ID,
		schema.CoreListing.ID,
	)

	listing := &Listing{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&listing.ID, &listing.Title, &listing.Slug, &listing.Description,
		&listing.ImageURL, &listing.Price, &listing.Location, &listing.Country,
		&listing.ReviewCount, &listing.OwnerID, &listing.OwnerUsername,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_listing_by_id")
	}
	return listing, nil
}

/*
FindBySlug retrieves a listing by its URL slug.

Description: Slugs are not unique by design (two owners can both offer a
"Cozy Cottage"); the newest matching listing wins.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Listing: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Listing, error) {
	query := fmt.Sprintf(`
		SELECT
			l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s,
			l.%s, l.%s, u.%s, l.%s, l.%s
		FROM %s l
		JOIN %s u ON l.%s = u.%s
		WHERE l.%s = $1
		ORDER BY l.%s DESC
		LIMIT 1
	`,
		schema.CoreListing.ID,
		schema.CoreListing.Title,
		schema.CoreListing.Slug,
		schema.CoreListing.Description,
		schema.CoreListing.ImageURL,
		schema.CoreListing.Price,
		schema.CoreListing.Location,
		schema.CoreListing.Country,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.OwnerID,
		schema.UserAccount.Username,
		schema.CoreListing.CreatedAt,
		schema.CoreListing.UpdatedAt,
		schema.CoreListing.Table,
		schema.UserAccount.Table,
		schema.CoreListing.OwnerID,
		schema.UserAccount.ID,
		schema.CoreListing.Slug,
		schema.CoreListing.CreatedAt,
	)

	listing := &Listing{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&listing.ID, &listing.Title, &listing.Slug, &listing.Description,
		&listing.ImageURL, &listing.Price, &listing.Location, &listing.Country,
		&listing.ReviewCount, &listing.OwnerID, &listing.OwnerUsername,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_listing_by_slug")
	}
	return listing, nil
}

// # Listing Mutation

/*
Create inserts a new listing record.

Parameters:
  - context: context.Context
  - listing: *Listing

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, listing *Listing) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreListing.Table,
		schema.CoreListing.ID,
		schema.CoreListing.Title,
		schema.CoreListing.Slug,
		schema.CoreListing.Description,
		schema.CoreListing.ImageURL,
		schema.CoreListing.Price,
		schema.CoreListing.Location,
		schema.CoreListing.Country,
		schema.CoreListing.OwnerID,
		schema.CoreListing.CreatedAt,
		schema.CoreListing.UpdatedAt,
		schema.CoreListing.CreatedAt,
		schema.CoreListing.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		listing.ID, listing.Title, listing.Slug, listing.Description,
		listing.ImageURL, listing.Price, listing.Location, listing.Country,
		listing.OwnerID,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)

	return dberr.Wrap(err, "create_listing")
}

/*
Update modifies listing metadata fields.

Parameters:
  - context: context.Context
  - listing: *Listing

Returns:
  - error: apperr.NotFound if the row vanished, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, listing *Listing) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreListing.Table,
		schema.CoreListing.Title,
		schema.CoreListing.Slug,
		schema.CoreListing.Description,
		schema.CoreListing.ImageURL,
		schema.CoreListing.Price,
		schema.CoreListing.Location,
		schema.CoreListing.Country,
		schema.CoreListing.UpdatedAt,
		schema.CoreListing.ID,
		schema.CoreListing.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		listing.ID, listing.Title, listing.Slug, listing.Description,
		listing.ImageURL, listing.Price, listing.Location, listing.Country,
	).Scan(&listing.UpdatedAt)

	return dberr.Wrap(err, "update_listing")
}

/*
DeleteCascade removes a listing and every dependent review atomically.

Description: Executes within an ACID transaction to guarantee referential
integrity under concurrency.
 1. Deletes all reviews whose listingid matches the target.
 2. Deletes the listing row itself.

If the listing row was already gone (a concurrent delete won the race), the
transaction rolls back and NotFound is returned: exactly one of two
concurrent deletes observes success.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - int: Number of reviews removed alongside the listing
  - error: apperr.NotFound or transactional failures
*/
func (repository *PostgresRepository) DeleteCascade(context context.Context, id string) (int, error) {

	// Establish Transactional Boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_delete_listing_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Remove Dependent Reviews
	reviewQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreReview.Table, schema.CoreReview.ListingID)

	reviewResult, err := transaction.Exec(context, reviewQuery, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_listing_reviews")
	}

	// Step 2: Remove the Listing Row
	listingQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreListing.Table, schema.CoreListing.ID)

	listingResult, err := transaction.Exec(context, listingQuery, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_listing")
	}

	// A zero-row delete means another actor removed the listing first. Roll
	// back so this transaction leaves no trace.
	if listingResult.RowsAffected() == 0 {
		return 0, dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "commit_delete_listing_tx")
	}

	return int(reviewResult.RowsAffected()), nil
}
