// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/wanderstay/internal/platform/database/schema"
	"github.com/taibuivan/wanderstay/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Review Retrieval

/*
ListByListing returns a paginated list of a listing's reviews.

Description: Joins the author's account row to denormalize the username,
and uses COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - listingID: string
  - limit: int
  - offset: int

Returns:
  - []*Review: Newest first
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByListing(context context.Context, listingID string, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT
			r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s,
			COUNT(*) OVER() as total
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CoreReview.ID,
		schema.CoreReview.ListingID,
		schema.CoreReview.AuthorID,
		schema.UserAccount.Username,
		schema.CoreReview.Body,
		schema.CoreReview.Rating,
		schema.CoreReview.CreatedAt,
		schema.CoreReview.Table,
		schema.UserAccount.Table,
		schema.CoreReview.AuthorID,
		schema.UserAccount.ID,
		schema.CoreReview.ListingID,
		schema.CoreReview.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, listingID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	var total int
	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID, &review.ListingID, &review.AuthorID, &review.AuthorUsername,
			&review.Body, &review.Rating, &review.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

/*
FindByID retrieves a single review record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Review: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreReview.ID,
		schema.CoreReview.ListingID,
		schema.CoreReview.AuthorID,
		schema.CoreReview.Body,
		schema.CoreReview.Rating,
		schema.CoreReview.CreatedAt,
		schema.CoreReview.Table,
		schema.CoreReview.ID,
	)

	review := &Review{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&review.ID, &review.ListingID, &review.AuthorID,
		&review.Body, &review.Rating, &review.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review_by_id")
	}
	return review, nil
}

// # Review Mutation

/*
Create persists a review and bumps the listing's counter atomically.

Description: Executes within an ACID transaction, deliberately ordered:
 1. Atomically increments the listing's reviewcount. This takes a row lock
    on the parent, so a concurrent cascade delete of the listing serializes
    against this insert. Zero rows affected means the listing is gone.
 2. Inserts the review row.

Rolls back completely if any stage fails to prevent counter drift.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.NotFound if the listing vanished, or transactional failures
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {

	// Establish Transactional Boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_review_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Lock the Parent and Bump the Counter
	countQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + 1
		WHERE %s = $1
	`,
		schema.CoreListing.Table,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.ID,
	)

	result, err := transaction.Exec(context, countQuery, review.ListingID)
	if err != nil {
		return dberr.Wrap(err, "increment_listing_review_count")
	}

	// No parent row: the listing was deleted. Roll back the counter bump.
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// Step 2: Persist the Review
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s
	`,
		schema.CoreReview.Table,
		schema.CoreReview.ID,
		schema.CoreReview.ListingID,
		schema.CoreReview.AuthorID,
		schema.CoreReview.Body,
		schema.CoreReview.Rating,
		schema.CoreReview.CreatedAt,
		schema.CoreReview.CreatedAt,
	)

	err = transaction.QueryRow(context, insertQuery,
		review.ID, review.ListingID, review.AuthorID, review.Body, review.Rating,
	).Scan(&review.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_review")
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

/*
Delete removes a review and decrements the listing's counter accurately.

Description: Wraps removal and counter decrement in a transaction. Only
decrements if a record was actually removed, and clamps with GREATEST(0, x)
to prevent negative drift during concurrent or duplicate requests.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.NotFound if the review was already gone, or transactional failures
*/
func (repository *PostgresRepository) Delete(context context.Context, review *Review) error {

	// Transactional State Setup
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_review_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Remove the Review
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreReview.Table, schema.CoreReview.ID)

	result, err := transaction.Exec(context, delQuery, review.ID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// Step 2: Validated Counter Decrement
	decQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = GREATEST(0, %s - 1)
		WHERE %s = $1
	`,
		schema.CoreListing.Table,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.ReviewCount,
		schema.CoreListing.ID,
	)

	_, err = transaction.Exec(context, decQuery, review.ListingID)
	if err != nil {
		return dberr.Wrap(err, "decrement_listing_review_count")
	}

	return transaction.Commit(context)
}
