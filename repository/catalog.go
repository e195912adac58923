package repository

import (
	"context"

	"github.com/feastgo/backend/domain"
)

// IngredientFilter narrows ingredient listings. NamePrefix matches
// case-insensitively against the start of the name.
type IngredientFilter struct {
	NamePrefix string
	Limit      int
}

// CatalogRepository serves the Tag and Ingredient reference data. Both are
// read-mostly; the upserts exist for the reference data loader.
type CatalogRepository interface {
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, filter IngredientFilter) ([]domain.Ingredient, error)
	UpsertIngredient(ctx context.Context, ingredient *domain.Ingredient) error

	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	UpsertTag(ctx context.Context, tag *domain.Tag) error
}
