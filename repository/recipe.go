package repository

import (
	"context"

	"github.com/feastgo/backend/domain"
)

type RecipeFilter struct {
	AuthorID string
	Limit    int
	Offset   int
}

// RecipeRepository persists the recipe aggregate. Create and Replace write
// the recipe row, its ingredient lines and its tag links inside a single
// transaction and return the hydrated aggregate read within that same
// transaction; a failure leaves nothing behind.
type RecipeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe, input domain.RecipeInput) (*domain.Recipe, error)
	Replace(ctx context.Context, id string, input domain.RecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}
