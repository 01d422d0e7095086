package models

import "time"

// User represents an account entity used for authentication and ownership of
// recipes, tags and ingredients. Sensitive fields must never be exposed
// outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique user identity used during authentication.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Username is an optional, non-unique handle kept for profile display.
	Username string `json:"username"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Plaintext passwords are never persisted or serialized.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account may authenticate.
	IsActive bool `json:"is_active"`

	// IsStaff and IsSuperuser are role flags for administrative access.
	// They are read-only from the API's point of view.
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`

	// DateJoined is the timestamp when the user account was created.
	DateJoined time.Time `json:"date_joined"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
