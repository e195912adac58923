package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a Postgres-backed implementation of CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) repository.CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	const query = `
	SELECT id, name, measurement_unit
	FROM ingredients
	WHERE id = $1
	`
	var ing domain.Ingredient
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	return &ing, nil
}

func (r *catalogRepository) ListIngredients(ctx context.Context, filter repository.IngredientFilter) ([]domain.Ingredient, error) {
	const query = `
	SELECT id, name, measurement_unit
	FROM ingredients
	WHERE ($1 = '' OR name ILIKE $1 || '%')
	ORDER BY name
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, filter.NamePrefix, clampLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *catalogRepository) UpsertIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if ingredient == nil || ingredient.Name == "" {
		return domain.ErrInvalidPayload
	}
	if ingredient.ID == "" {
		ingredient.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO ingredients (id, name, measurement_unit)
	VALUES ($1, $2, $3)
	ON CONFLICT (name, measurement_unit) DO UPDATE
	SET name = EXCLUDED.name
	RETURNING id
	`
	return r.pool.QueryRow(ctx, query, ingredient.ID, ingredient.Name, ingredient.MeasurementUnit).Scan(&ingredient.ID)
}

func (r *catalogRepository) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	const query = `
	SELECT id, name, COALESCE(color, ''), slug
	FROM tags
	WHERE id = $1
	`
	var tag domain.Tag
	if err := r.pool.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	const query = `
	SELECT id, name, COALESCE(color, ''), slug
	FROM tags
	ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *catalogRepository) UpsertTag(ctx context.Context, tag *domain.Tag) error {
	if tag == nil || tag.Name == "" || tag.Slug == "" {
		return domain.ErrInvalidPayload
	}
	if tag.Color != "" && !domain.IsValidHexColor(tag.Color) {
		return domain.NewFieldError("color", "color must be a hex value")
	}
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tags (id, name, color, slug)
	VALUES ($1, $2, NULLIF($3, ''), $4)
	ON CONFLICT (slug) DO UPDATE
	SET name = EXCLUDED.name,
		color = EXCLUDED.color
	RETURNING id
	`
	return r.pool.QueryRow(ctx, query, tag.ID, tag.Name, tag.Color, tag.Slug).Scan(&tag.ID)
}
