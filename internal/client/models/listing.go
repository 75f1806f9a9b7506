package models

import "time"

// ListingStatus is the sales state of a listing.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusReserved  ListingStatus = "reserved"
	StatusSold      ListingStatus = "sold"
)

// Listing is a sellable property record ("cottage"). Owned by the catalog;
// mutated only through the admin CRUD operations.
//
// Price is an integer amount with no minor currency unit. Images is an
// ordered sequence of filenames; the first one is the card thumbnail.
type Listing struct {
	ID          int64         `json:"id,omitempty"`
	Title       string        `json:"title"`
	Price       int64         `json:"price"`
	Location    string        `json:"location"`
	Category    string        `json:"category"`
	Area        int           `json:"area"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	Floors      int           `json:"floors"`
	Status      ListingStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	Images      []string      `json:"images"`
	CreatedAt   time.Time     `json:"createdAt"`
}
