// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages guest reviews attached to listings.

A review always belongs to exactly one listing and one author. Reviews are
immutable once posted: they can only be created and deleted, never edited.

# Core Responsibility

  - Feedback: Defines the [Review] entity (body plus 1-5 rating).
  - Ownership: Only the author of a review may delete it.
  - Integrity: A review can never be created against a vanished listing, and
    the listing's denormalized review counter always matches reality.
*/
package review

import "time"

// # Core Entities

// Review represents a guest's feedback on a listing.
type Review struct {
	ID             string    `json:"id"` // UUIDv7
	ListingID      string    `json:"listing_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"` // Denormalized for list views
	Body           string    `json:"body"`
	Rating         int       `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
}

// OwnedBy implements [sec.Ownable] for the mutation guard.
func (review *Review) OwnedBy() string {
	return review.AuthorID
}

// # Field Identifiers

const (
	FieldBody    = "body"
	FieldRating  = "rating"
	FieldMessage = "message"
)

// # Validation Constraints

const (
	// MinRating and MaxRating bound the star scale.
	MinRating = 1
	MaxRating = 5

	// MaxBodyLength caps the review text.
	MaxBodyLength = 2000
)
