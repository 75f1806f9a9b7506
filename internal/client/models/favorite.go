package models

import "time"

// Favorite is the user-to-listing bookmark join entity. At most one Favorite
// may exist per (UserID, CottageID) pair; the backend does not enforce this,
// so the favorites service checks before inserting.
type Favorite struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"userId"`
	CottageID int64     `json:"cottageId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteListing is a favorite joined with the listing it points to,
// as shown on the favorites page.
type FavoriteListing struct {
	Listing    Listing
	FavoriteID int64
	AddedAt    time.Time
}
