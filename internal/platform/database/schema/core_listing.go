package schema

// CoreListingTable represents the 'core.listing' table
type CoreListingTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	ImageURL    string
	Price       string
	Location    string
	Country     string
	ReviewCount string
	OwnerID     string
	CreatedAt   string
	UpdatedAt   string
}

// CoreListing is the schema definition for core.listing
var CoreListing = CoreListingTable{
	Table:       "core.listing",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	ImageURL:    "imageurl",
	Price:       "price",
	Location:    "location",
	Country:     "country",
	ReviewCount: "reviewcount",
	OwnerID:     "ownerid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreListingTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.ImageURL, t.Price,
		t.Location, t.Country, t.ReviewCount, t.OwnerID, t.CreatedAt, t.UpdatedAt,
	}
}
