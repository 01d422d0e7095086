package models

// Recipe is the central domain entity: a titled dish description with
// preparation time, price, an optional external link and image, and
// many-to-many sets of user-scoped tags and ingredients.
//
// The owner is immutable after creation. Tag and ingredient sets are
// unordered and membership-unique; replacing them is an all-or-nothing
// operation handled at the repository layer.
type Recipe struct {
	ID int64 `json:"id"`

	// UserID is the owning user. Not serialized; a recipe is only ever
	// visible to its owner.
	UserID int64 `json:"-"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// TimeMinutes is the preparation time in whole minutes.
	TimeMinutes int `json:"time_minutes"`

	// Price is the fixed-point cost with two decimal places.
	Price Price `json:"price"`

	// Link is an optional external URL for the recipe source.
	Link string `json:"link"`

	// ImagePath is the storage key of the attached image, empty when no
	// image has been uploaded. Rendered as "image" in API payloads.
	ImagePath string `json:"image,omitempty"`

	// Tags and Ingredients are the associated objects, loaded on detail
	// reads. List reads populate them as well so that ID and name
	// projections can be derived without extra queries.
	Tags        []Tag        `json:"-"`
	Ingredients []Ingredient `json:"-"`
}

// TableName returns the name of the database table
// associated with the Recipe model.
func (r Recipe) TableName() string {
	return "recipes"
}

// TagIDs projects the identifiers of the associated tags.
func (r Recipe) TagIDs() []int64 {
	ids := make([]int64, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs projects the identifiers of the associated ingredients.
func (r Recipe) IngredientIDs() []int64 {
	ids := make([]int64, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// TagNames projects the names of the associated tags.
func (r Recipe) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}

// IngredientNames projects the names of the associated ingredients.
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		names = append(names, i.Name)
	}
	return names
}
