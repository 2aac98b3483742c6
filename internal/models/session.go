package models

import "time"

// SessionRecord binds an opaque bearer token to an identity
type SessionRecord struct {
	Token string `json:"token"` // unique key

	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`

	// access token or externally issued identity token, depending on how the
	// session was created - never sent back to clients
	ProviderCredential string `json:"providerCredential"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the record is past its expiry at the given instant
func (r SessionRecord) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// User projects the record onto the public identity shape
func (r SessionRecord) User() User {
	return User{
		UID:         r.UserID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		PhotoURL:    r.PictureURL,
	}
}
