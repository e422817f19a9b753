// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/listing"
	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
	"github.com/taibuivan/wanderstay/pkg/pointer"
	"github.com/taibuivan/wanderstay/pkg/slice"
)

// fakeRepository is an in-memory listing Repository double.
type fakeRepository struct {
	listings map[string]*listing.Listing

	updateCount  int
	cascadeCount int
	reviewCounts map[string]int // reviews per listing, consumed by DeleteCascade
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		listings:     make(map[string]*listing.Listing),
		reviewCounts: make(map[string]int),
	}
}

func (repository *fakeRepository) List(_ context.Context, filter listing.Filter, limit, offset int) ([]*listing.Listing, int, error) {
	all := make([]*listing.Listing, 0, len(repository.listings))
	for _, entity := range repository.listings {
		all = append(all, entity)
	}

	matches := slice.Filter(all, func(entity *listing.Listing) bool {
		if len(filter.Countries) > 0 && !slices.Contains(filter.Countries, entity.Country) {
			return false
		}
		if filter.OwnerID != "" && entity.OwnerID != filter.OwnerID {
			return false
		}
		if filter.MinPrice > 0 && entity.Price < filter.MinPrice {
			return false
		}
		if filter.MaxPrice > 0 && entity.Price > filter.MaxPrice {
			return false
		}
		return true
	})

	copies := slice.Map(matches, func(entity *listing.Listing) *listing.Listing {
		copied := *entity
		return &copied
	})
	return copies, len(copies), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*listing.Listing, error) {
	entity, ok := repository.listings[id]
	if !ok {
		return nil, apperr.NotFound("Listing")
	}
	copied := *entity
	return &copied, nil
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*listing.Listing, error) {
	for _, entity := range repository.listings {
		if entity.Slug == slug {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Listing")
}

func (repository *fakeRepository) Create(_ context.Context, entity *listing.Listing) error {
	copied := *entity
	repository.listings[entity.ID] = &copied
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, entity *listing.Listing) error {
	if _, ok := repository.listings[entity.ID]; !ok {
		return apperr.NotFound("Listing")
	}
	repository.updateCount++
	copied := *entity
	repository.listings[entity.ID] = &copied
	return nil
}

func (repository *fakeRepository) DeleteCascade(_ context.Context, id string) (int, error) {
	if _, ok := repository.listings[id]; !ok {
		return 0, apperr.NotFound("Listing")
	}
	repository.cascadeCount++
	removed := repository.reviewCounts[id]
	delete(repository.listings, id)
	delete(repository.reviewCounts, id)
	return removed, nil
}

func newTestService(repository listing.Repository) *listing.Service {
	return listing.NewService(repository, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

var (
	owner    = &sec.Identity{UserID: "owner-1", Username: "tai"}
	stranger = &sec.Identity{UserID: "stranger-1", Username: "minh"}
)

// createListing publishes a listing through the real service.
func createListing(t *testing.T, service *listing.Service, actor *sec.Identity, input listing.CreateInput) *listing.Listing {
	t.Helper()
	created, err := service.CreateListing(context.Background(), actor, input)
	require.NoError(t, err)
	return created
}

/*
TestService_CreateListing tests creation, slug derivation, and image coercion.
*/
func TestService_CreateListing(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		created, err := service.CreateListing(ctx, owner, listing.CreateInput{
			Title:    "Cozy Beachfront Cottage",
			ImageURL: "https://images.example.com/cottage.jpg",
			Price:    150,
			Location: "Da Nang",
			Country:  "Vietnam",
		})
		require.NoError(t, err)
		assert.Len(t, created.ID, 36)
		assert.Equal(t, "cozy-beachfront-cottage", created.Slug)
		assert.Equal(t, "owner-1", created.OwnerID)
		assert.Equal(t, "https://images.example.com/cottage.jpg", created.ImageURL)
	})

	t.Run("blank_image_coerced", func(t *testing.T) {
		created, err := service.CreateListing(ctx, owner, listing.CreateInput{
			Title:    "Mountain Cabin",
			ImageURL: "   ",
			Price:    90,
		})
		require.NoError(t, err)
		assert.Equal(t, listing.DefaultImageURL, created.ImageURL)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		_, err := service.CreateListing(ctx, nil, listing.CreateInput{Title: "Ghost Stay", Price: 10})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := service.CreateListing(ctx, owner, listing.CreateInput{
			Title: "", // Required
			Price: -5, // Must not be negative
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})
}

/*
TestService_ListListings tests catalogue filtering by country, owner, and
price bounds.
*/
func TestService_ListListings(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)
	ctx := context.Background()

	createListing(t, service, owner, listing.CreateInput{Title: "Beach Hut", Price: 80, Country: "Vietnam"})
	createListing(t, service, owner, listing.CreateInput{Title: "City Loft", Price: 220, Country: "Japan"})
	createListing(t, service, stranger, listing.CreateInput{Title: "Forest Cabin", Price: 140, Country: "Vietnam"})

	t.Run("unfiltered", func(t *testing.T) {
		_, total, err := service.ListListings(ctx, listing.Filter{}, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("by_country", func(t *testing.T) {
		results, total, err := service.ListListings(ctx, listing.Filter{Countries: []string{"Vietnam"}}, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, entity := range results {
			assert.Equal(t, "Vietnam", entity.Country)
		}
	})

	t.Run("by_owner", func(t *testing.T) {
		_, total, err := service.ListListings(ctx, listing.Filter{OwnerID: stranger.UserID}, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("by_price_band", func(t *testing.T) {
		results, total, err := service.ListListings(ctx, listing.Filter{MinPrice: 100, MaxPrice: 200}, 20, 0)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, "Forest Cabin", results[0].Title)
	})
}

/*
TestService_GetListing tests retrieval by UUID and by slug through the same
entry point.
*/
func TestService_GetListing(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)
	ctx := context.Background()

	created := createListing(t, service, owner, listing.CreateInput{
		Title: "Cozy Beachfront Cottage",
		Price: 150,
	})

	t.Run("by_id", func(t *testing.T) {
		found, err := service.GetListing(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("by_slug", func(t *testing.T) {
		found, err := service.GetListing(ctx, "cozy-beachfront-cottage")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.GetListing(ctx, "no-such-listing")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}

/*
TestService_UpdateListing tests partial updates, slug regeneration, and the
ownership guard.
*/
func TestService_UpdateListing(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)
	ctx := context.Background()

	created := createListing(t, service, owner, listing.CreateInput{
		Title:    "Cozy Beachfront Cottage",
		ImageURL: "https://images.example.com/cottage.jpg",
		Price:    150,
	})

	t.Run("partial_update", func(t *testing.T) {
		updated, err := service.UpdateListing(ctx, owner, created.ID, listing.UpdateInput{
			Price: pointer.To(175),
		})
		require.NoError(t, err)
		assert.Equal(t, 175, updated.Price)

		// Untouched fields survive
		assert.Equal(t, "Cozy Beachfront Cottage", updated.Title)
		assert.Equal(t, "cozy-beachfront-cottage", updated.Slug)
	})

	t.Run("title_change_regenerates_slug", func(t *testing.T) {
		updated, err := service.UpdateListing(ctx, owner, created.ID, listing.UpdateInput{
			Title: pointer.To("Sunny Hillside Villa"),
		})
		require.NoError(t, err)
		assert.Equal(t, "sunny-hillside-villa", updated.Slug)
	})

	t.Run("blank_image_coerced", func(t *testing.T) {
		updated, err := service.UpdateListing(ctx, owner, created.ID, listing.UpdateInput{
			ImageURL: pointer.To(""),
		})
		require.NoError(t, err)
		assert.Equal(t, listing.DefaultImageURL, updated.ImageURL)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		before := repository.updateCount

		_, err := service.UpdateListing(ctx, stranger, created.ID, listing.UpdateInput{
			Price: pointer.To(1),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

		// The store was never touched
		assert.Equal(t, before, repository.updateCount)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		_, err := service.UpdateListing(ctx, nil, created.ID, listing.UpdateInput{})
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("missing_reports_not_found", func(t *testing.T) {
		// Missing resources stay 404 even for a would-be intruder
		_, err := service.UpdateListing(ctx, stranger, "00000000-0000-7000-8000-000000000000", listing.UpdateInput{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})

	t.Run("invalid_delta_rejected", func(t *testing.T) {
		_, err := service.UpdateListing(ctx, owner, created.ID, listing.UpdateInput{
			Title: pointer.To(""),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})
}

/*
TestService_DeleteListing tests the guarded cascade deletion.
*/
func TestService_DeleteListing(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)
	ctx := context.Background()

	created := createListing(t, service, owner, listing.CreateInput{
		Title: "Cozy Beachfront Cottage",
		Price: 150,
	})
	repository.reviewCounts[created.ID] = 3

	t.Run("anonymous_rejected", func(t *testing.T) {
		err := service.DeleteListing(ctx, nil, created.ID)
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		err := service.DeleteListing(ctx, stranger, created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
		assert.Zero(t, repository.cascadeCount)
	})

	t.Run("owner_deletes", func(t *testing.T) {
		require.NoError(t, service.DeleteListing(ctx, owner, created.ID))
		assert.Equal(t, 1, repository.cascadeCount)

		_, err := service.GetListing(ctx, created.ID)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})

	t.Run("second_delete_not_found", func(t *testing.T) {
		err := service.DeleteListing(ctx, owner, created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}
