package models

// Ingredient is a user-scoped component that can be referenced by any number
// of recipes. Same ownership and lifecycle rules as [Tag].
type Ingredient struct {
	ID int64 `json:"id"`

	Name string `json:"name"`

	// UserID is the owning user. Not serialized.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Ingredient model.
func (i Ingredient) TableName() string {
	return "ingredients"
}
