package recipe

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// UseCase owns the recipe aggregate: creation, replacement and deletion of a
// recipe together with its ingredient lines and tag links. All mutations are
// validated up front and executed by the repository in one transaction.
type UseCase struct {
	recipes repository.RecipeRepository
	logger  *zap.Logger
}

func New(recipes repository.RecipeRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		recipes: recipes,
		logger:  logger,
	}
}

func (uc *UseCase) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return uc.recipes.GetByID(ctx, id)
}

func (uc *UseCase) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	return uc.recipes.List(ctx, filter)
}

// CreateRecipe validates the input and persists the aggregate. Validation
// happens entirely before the first write, so an invalid command never opens
// a transaction.
func (uc *UseCase) CreateRecipe(ctx context.Context, authorID string, input domain.RecipeInput) (*domain.Recipe, error) {
	if authorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.recipes.Create(ctx, &domain.Recipe{AuthorID: authorID}, input)
	if err != nil {
		return nil, uc.classify(err, "create recipe")
	}
	return created, nil
}

// UpdateRecipe replaces the recipe's scalar fields and both child sets.
// Ownership is checked before any mutation; the replacement itself is
// all-or-nothing inside the repository transaction.
func (uc *UseCase) UpdateRecipe(ctx context.Context, recipeID, authorID string, input domain.RecipeInput) (*domain.Recipe, error) {
	existing, err := uc.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != authorID {
		return nil, domain.ErrNotRecipeAuthor
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.recipes.Replace(ctx, recipeID, input)
	if err != nil {
		return nil, uc.classify(err, "update recipe")
	}
	return updated, nil
}

// DeleteRecipe removes the recipe. Ingredient lines, tag links, favorites
// and cart entries referencing it are cascaded by the store, so no orphaned
// membership rows survive.
func (uc *UseCase) DeleteRecipe(ctx context.Context, recipeID, authorID string) error {
	existing, err := uc.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return domain.ErrNotRecipeAuthor
	}
	return uc.recipes.Delete(ctx, recipeID)
}

// classify passes known domain outcomes through and flags anything else as
// an internal storage failure.
func (uc *UseCase) classify(err error, op string) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	uc.logger.Error("unexpected storage error", zap.String("operation", op), zap.Error(err))
	return domain.WrapError(domain.ErrCodeInternal, "storage failure", err)
}
