package domain

// RelationKind identifies one of the three user-to-target membership
// relations. Favorites and cart entries target recipes; subscriptions target
// other users.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationCart         RelationKind = "cart"
	RelationSubscription RelationKind = "subscription"
)

// TargetsUser reports whether the relation's target is another user rather
// than a recipe.
func (k RelationKind) TargetsUser() bool {
	return k == RelationSubscription
}

// Valid reports whether k is one of the known relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFavorite, RelationCart, RelationSubscription:
		return true
	}
	return false
}

// SubscriptionEntry is one author a user subscribes to, annotated with the
// author's recipe count for listing.
type SubscriptionEntry struct {
	Author      User `json:"author"`
	RecipeCount int  `json:"recipes_count"`
}
