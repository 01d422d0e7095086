package models

// RegisterRequest is the payload for creating a new user account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenRequest is the payload for obtaining an auth token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries a partial or full profile update.
// Only non-nil fields are applied (partial update support).
// A non-nil Password is re-hashed before storage, never stored raw.
type UserUpdate struct {
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// RecipeInput is the payload for creating or updating a recipe.
//
// All fields are pointers so that partial updates can distinguish "absent"
// from "zero". Creation requires Title, TimeMinutes and Price to be present.
// When Tags or Ingredients is non-nil the given ID set REPLACES the current
// association set; a nil slice leaves it untouched.
//
// There is deliberately no owner field: the authenticated caller is always
// the owner on creation, and any "user" key a client sends is dropped during
// decoding rather than rejected.
type RecipeInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TimeMinutes *int    `json:"time_minutes,omitempty"`
	Price       *Price  `json:"price,omitempty"`
	Link        *string `json:"link,omitempty"`

	Tags        *[]int64 `json:"tags,omitempty"`
	Ingredients *[]int64 `json:"ingredients,omitempty"`
}

// NameInput is the payload for creating or renaming a tag or an ingredient.
type NameInput struct {
	Name string `json:"name"`
}
