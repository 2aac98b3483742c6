package models

import (
	"fmt"
	"time"
)

// GuestUserID is the sentinel id handed to callers the gate couldn't identify
const GuestUserID = "guest"

// User is the public identity the API hands back to clients
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// String provides a string representation of the user
// This is useful for logging and debugging
func (u User) String() string {
	return fmt.Sprintf("User(UID=%s, Email=%s)", u.UID, u.Email)
}

// ProviderIdentity is what the identity provider hands back after a code exchange
type ProviderIdentity struct {
	User       User
	Credential string    // provider access token
	ExpiresAt  time.Time // provider's own token expiry, zero if it didn't say
}

// RequestIdentity is attached to every request that passes the auth gate
type RequestIdentity struct {
	User  User
	Guest bool // no usable session behind this request

	Token         string // session token the identity was resolved from
	RejectedToken string // token that was presented but didn't resolve
}

// GuestIdentity builds the substitute identity for unauthenticated callers
func GuestIdentity(rejectedToken string) RequestIdentity {
	return RequestIdentity{
		User: User{
			UID:         GuestUserID,
			DisplayName: "Guest",
		},
		Guest:         true,
		RejectedToken: rejectedToken,
	}
}
