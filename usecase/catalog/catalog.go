package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// UseCase serves the Tag and Ingredient reference data.
type UseCase struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

func New(catalog repository.CatalogRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		catalog: catalog,
		logger:  logger,
	}
}

func (uc *UseCase) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	return uc.catalog.GetIngredient(ctx, id)
}

func (uc *UseCase) ListIngredients(ctx context.Context, filter repository.IngredientFilter) ([]domain.Ingredient, error) {
	return uc.catalog.ListIngredients(ctx, filter)
}

func (uc *UseCase) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	return uc.catalog.GetTag(ctx, id)
}

func (uc *UseCase) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return uc.catalog.ListTags(ctx)
}

// ImportIngredients upserts a batch of ingredient reference rows, reporting
// how many were stored. Used by the reference data loader.
func (uc *UseCase) ImportIngredients(ctx context.Context, ingredients []domain.Ingredient) (int, error) {
	stored := 0
	for i := range ingredients {
		if err := uc.catalog.UpsertIngredient(ctx, &ingredients[i]); err != nil {
			return stored, err
		}
		stored++
	}
	uc.logger.Info("ingredients imported", zap.Int("count", stored))
	return stored, nil
}

// ImportTags upserts a batch of tag reference rows.
func (uc *UseCase) ImportTags(ctx context.Context, tags []domain.Tag) (int, error) {
	stored := 0
	for i := range tags {
		if err := uc.catalog.UpsertTag(ctx, &tags[i]); err != nil {
			return stored, err
		}
		stored++
	}
	uc.logger.Info("tags imported", zap.Int("count", stored))
	return stored, nil
}
