package models

import "time"

// Token is an opaque bearer credential bound one-to-one to a user account.
//
// The Key is a random string generated server-side at first login and reused
// on subsequent logins until the account is deleted. It carries no embedded
// claims; every authenticated request resolves the key back to its owner
// through the token repository.
type Token struct {
	// Key is the opaque credential string presented in the
	// "Authorization: Bearer <key>" header.
	Key string `json:"token"`

	// UserID is the owner of the token.
	// Excluded from JSON serialization; it is an internal server-side field.
	UserID int64 `json:"-"`

	// CreatedAt is the timestamp of the first issuance.
	CreatedAt time.Time `json:"-"`
}

// String returns the opaque key. It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.Key
}
