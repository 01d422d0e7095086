package models

// Tag is a user-scoped label that can be attached to any number of recipes.
// Every tag belongs to exactly one user; cross-user visibility is forbidden
// at the query layer.
type Tag struct {
	ID int64 `json:"id"`

	Name string `json:"name"`

	// UserID is the owning user. Not serialized; ownership is implied by the
	// authenticated caller on every request.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "tags"
}
