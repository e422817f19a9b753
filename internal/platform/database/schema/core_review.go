package schema

// CoreReviewTable represents the 'core.review' table
type CoreReviewTable struct {
	Table     string
	ID        string
	ListingID string
	AuthorID  string
	Body      string
	Rating    string
	CreatedAt string
}

// CoreReview is the schema definition for core.review
var CoreReview = CoreReviewTable{
	Table:     "core.review",
	ID:        "id",
	ListingID: "listingid",
	AuthorID:  "authorid",
	Body:      "body",
	Rating:    "rating",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CoreReviewTable) Columns() []string {
	return []string{
		t.ID, t.ListingID, t.AuthorID, t.Body, t.Rating, t.CreatedAt,
	}
}
