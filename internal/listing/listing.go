// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing manages the stay listings that make up the Wanderstay catalogue.

It handles the lifecycle of a listing from creation through updates to
cascading deletion, and enforces the ownership rules that protect listings
from modification by non-owners.

# Core Responsibility

  - Catalogue: Defines the [Listing] entity and its metadata.
  - Ownership: Every listing is owned by exactly one user; only the owner
    may update or delete it.
  - Integrity: Deleting a listing removes its dependent reviews in the same
    transaction, so no review ever outlives its listing.
*/
package listing

import "time"

// DefaultImageURL is substituted whenever a listing is created or updated
// with a blank image reference. The coercion happens at the service write
// boundary so every listing that reaches storage carries a renderable image.
const DefaultImageURL = "https://unsplash.com/photos/a-room-with-plants-shelf-and-a-framed-quote-tBWJpx89IrM"

// # Core Entities

// Listing represents a stay offered on the Wanderstay platform.
type Listing struct {
	ID            string    `json:"id"` // UUIDv7
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url"`
	Price         int       `json:"price"` // Per night, in whole currency units
	Location      string    `json:"location,omitempty"`
	Country       string    `json:"country,omitempty"`
	ReviewCount   int       `json:"review_count"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"` // Denormalized for detail views
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OwnedBy implements [sec.Ownable] for the mutation guard.
func (listing *Listing) OwnedBy() string {
	return listing.OwnerID
}

// # Search & Filtering

// Filter holds parameters for searching and listing the catalogue.
//
// Zero values mean "no constraint": an empty Countries slice matches every
// country, and a zero price bound is ignored.
type Filter struct {
	Query     string   `json:"q"`
	Countries []string `json:"countries"`
	OwnerID   string   `json:"owner_id"`
	MinPrice  int      `json:"min_price"`
	MaxPrice  int      `json:"max_price"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldPrice       = "price"
	FieldLocation    = "location"
	FieldCountry     = "country"
	FieldMessage     = "message"
)

// # Validation Constraints

const (
	// MaxTitleLength caps listing titles to keep them display-friendly.
	MaxTitleLength = 200

	// MaxDescriptionLength caps the free-text description.
	MaxDescriptionLength = 5000

	// MaxLocationLength caps the location and country fields.
	MaxLocationLength = 120
)
