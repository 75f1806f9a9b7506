package models

import "time"

// Session is the authenticated identity of the client: an opaque bearer
// token paired with the user it belongs to. Created on login/registration,
// destroyed on logout or when corrupt persisted state is detected.
type Session struct {
	ID        int64     `json:"id,omitempty"`
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
