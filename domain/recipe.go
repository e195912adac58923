package domain

import (
	"fmt"
	"time"
)

// Bounds inherited from the reference data set.
const (
	MinCookingTime = 1
	MaxCookingTime = 180
	MinLineAmount  = 1
	MaxLineAmount  = 1200
)

// Recipe is the aggregate root: the recipe row together with its ingredient
// lines and tag associations. The lines are owned exclusively by the recipe;
// tags are shared references.
type Recipe struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"author_id"`
	Name        string           `json:"name"`
	Text        string           `json:"text"`
	Image       string           `json:"image,omitempty"`
	CookingTime int              `json:"cooking_time"`
	Ingredients []IngredientLine `json:"ingredients"`
	Tags        []Tag            `json:"tags"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IngredientLine is one (recipe, ingredient, amount) row, hydrated with the
// ingredient's name and unit for read paths. The unit always comes from the
// ingredient itself, never from the line.
type IngredientLine struct {
	IngredientID    string `json:"id"`
	Name            string `json:"name,omitempty"`
	MeasurementUnit string `json:"measurement_unit,omitempty"`
	Amount          int    `json:"amount"`
}

// LineInput is one submitted (ingredient, amount) pair.
type LineInput struct {
	IngredientID string
	Amount       int
}

// RecipeInput carries everything needed to create or replace a recipe
// aggregate. The same validation applies to both operations.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	Ingredients []LineInput
	TagIDs      []string
}

// Validate checks the input against the aggregate invariants. The check order
// is fixed (presence, positivity, uniqueness, numeric bounds) so that the
// reported violation is deterministic when several rules are broken at once.
func (in *RecipeInput) Validate() *Error {
	if in == nil {
		return ErrInvalidPayload
	}
	if len(in.Ingredients) == 0 {
		return NewFieldError("ingredients", "recipe needs at least one ingredient")
	}
	if len(in.TagIDs) == 0 {
		return NewFieldError("tags", "recipe needs at least one tag")
	}
	for _, line := range in.Ingredients {
		if line.Amount < MinLineAmount {
			return NewFieldError("ingredients", fmt.Sprintf("ingredient %s: amount must be positive", line.IngredientID))
		}
	}
	if in.CookingTime < MinCookingTime {
		return NewFieldError("cooking_time", "cooking time must be positive")
	}
	seenIngredients := make(map[string]struct{}, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, ok := seenIngredients[line.IngredientID]; ok {
			return NewFieldError("ingredients", fmt.Sprintf("ingredient %s listed more than once", line.IngredientID))
		}
		seenIngredients[line.IngredientID] = struct{}{}
	}
	seenTags := make(map[string]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, ok := seenTags[id]; ok {
			return NewFieldError("tags", fmt.Sprintf("tag %s listed more than once", id))
		}
		seenTags[id] = struct{}{}
	}
	if in.CookingTime > MaxCookingTime {
		return NewFieldError("cooking_time", fmt.Sprintf("cooking time must not exceed %d minutes", MaxCookingTime))
	}
	for _, line := range in.Ingredients {
		if line.Amount > MaxLineAmount {
			return NewFieldError("ingredients", fmt.Sprintf("ingredient %s: amount must not exceed %d", line.IngredientID, MaxLineAmount))
		}
	}
	return nil
}
