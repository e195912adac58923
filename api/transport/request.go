package transport

// RecipeLineRequest is one submitted (ingredient, amount) pair.
type RecipeLineRequest struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// RecipeRequest carries the full create/replace payload for a recipe.
type RecipeRequest struct {
	Name        string              `json:"name"`
	Text        string              `json:"text"`
	Image       string              `json:"image"`
	CookingTime int                 `json:"cooking_time"`
	Ingredients []RecipeLineRequest `json:"ingredients"`
	Tags        []string            `json:"tags"`
}

// RegisterRequest carries the fields for a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileUpdateRequest rewrites the caller's profile fields.
type ProfileUpdateRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
