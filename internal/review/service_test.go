// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/internal/review"
)

// fakeRepository is an in-memory review Repository double. It mimics the
// store-level invariant that a review cannot be created against a listing
// that no longer exists.
type fakeRepository struct {
	reviews        map[string]*review.Review
	livingListings map[string]bool

	deleteCount int
}

func newFakeRepository(listingIDs ...string) *fakeRepository {
	repository := &fakeRepository{
		reviews:        make(map[string]*review.Review),
		livingListings: make(map[string]bool),
	}
	for _, id := range listingIDs {
		repository.livingListings[id] = true
	}
	return repository
}

func (repository *fakeRepository) ListByListing(_ context.Context, listingID string, limit, offset int) ([]*review.Review, int, error) {
	matches := make([]*review.Review, 0)
	for _, entity := range repository.reviews {
		if entity.ListingID == listingID {
			copied := *entity
			matches = append(matches, &copied)
		}
	}
	return matches, len(matches), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*review.Review, error) {
	entity, ok := repository.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	copied := *entity
	return &copied, nil
}

func (repository *fakeRepository) Create(_ context.Context, entity *review.Review) error {
	if !repository.livingListings[entity.ListingID] {
		return apperr.NotFound("Listing")
	}
	copied := *entity
	repository.reviews[entity.ID] = &copied
	return nil
}

func (repository *fakeRepository) Delete(_ context.Context, entity *review.Review) error {
	if _, ok := repository.reviews[entity.ID]; !ok {
		return apperr.NotFound("Review")
	}
	repository.deleteCount++
	delete(repository.reviews, entity.ID)
	return nil
}

func newTestService(repository review.Repository) *review.Service {
	return review.NewService(repository, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

var (
	author   = &sec.Identity{UserID: "author-1", Username: "tai"}
	stranger = &sec.Identity{UserID: "stranger-1", Username: "minh"}
)

/*
TestService_CreateReview tests review posting, validation, and the
vanished-listing edge.
*/
func TestService_CreateReview(t *testing.T) {
	repository := newFakeRepository("listing-1")
	service := newTestService(repository)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		created, err := service.CreateReview(ctx, author, "listing-1", review.CreateInput{
			Body:   "Wonderful stay, would come back!",
			Rating: 5,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "listing-1", created.ListingID)
		assert.Equal(t, "author-1", created.AuthorID)
		assert.Equal(t, "tai", created.AuthorUsername)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		_, err := service.CreateReview(ctx, nil, "listing-1", review.CreateInput{Body: "ok", Rating: 3})
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("rating_out_of_range", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := service.CreateReview(ctx, author, "listing-1", review.CreateInput{
				Body:   "decent",
				Rating: rating,
			})
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		}
	})

	t.Run("body_required", func(t *testing.T) {
		_, err := service.CreateReview(ctx, author, "listing-1", review.CreateInput{Body: "  ", Rating: 4})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("vanished_listing", func(t *testing.T) {
		_, err := service.CreateReview(ctx, author, "listing-gone", review.CreateInput{
			Body:   "posting into the void",
			Rating: 4,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}

/*
TestService_DeleteReview tests authorship enforcement and the listing-scope check.
*/
func TestService_DeleteReview(t *testing.T) {
	repository := newFakeRepository("listing-1", "listing-2")
	service := newTestService(repository)
	ctx := context.Background()

	created, err := service.CreateReview(ctx, author, "listing-1", review.CreateInput{
		Body:   "Wonderful stay!",
		Rating: 5,
	})
	require.NoError(t, err)

	t.Run("anonymous_rejected", func(t *testing.T) {
		err := service.DeleteReview(ctx, nil, "listing-1", created.ID)
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("listing_mismatch_is_not_found", func(t *testing.T) {
		// A valid review ID under the wrong listing must not confirm the
		// review's existence.
		err := service.DeleteReview(ctx, author, "listing-2", created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		err := service.DeleteReview(ctx, stranger, "listing-1", created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
		assert.Zero(t, repository.deleteCount)
	})

	t.Run("author_deletes", func(t *testing.T) {
		require.NoError(t, service.DeleteReview(ctx, author, "listing-1", created.ID))
		assert.Equal(t, 1, repository.deleteCount)
	})

	t.Run("second_delete_not_found", func(t *testing.T) {
		err := service.DeleteReview(ctx, author, "listing-1", created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}
