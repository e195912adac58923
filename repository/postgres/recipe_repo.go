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

type recipeRepository struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository returns a Postgres-backed implementation of RecipeRepository.
// Every mutation runs inside a single transaction: the recipe row, its
// ingredient lines and its tag links are written (or replaced) together, and
// the returned aggregate is read back before commit so the response reflects
// exactly the committed state.
func NewRecipeRepository(pool *pgxpool.Pool) repository.RecipeRepository {
	return &recipeRepository{pool: pool}
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx so reads can run
// inside or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	return getRecipe(ctx, r.pool, id)
}

func (r *recipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	const query = `
	SELECT id
	FROM recipes
	WHERE ($1 = '' OR author_id = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.AuthorID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := getRecipe(ctx, r.pool, id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe, input domain.RecipeInput) (*domain.Recipe, error) {
	if recipe == nil {
		return nil, domain.ErrInvalidPayload
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertRecipe = `
	INSERT INTO recipes (id, author_id, name, text, image, cooking_time)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insertRecipe,
		recipe.ID,
		recipe.AuthorID,
		input.Name,
		input.Text,
		input.Image,
		input.CookingTime,
	).Scan(&recipe.CreatedAt); err != nil {
		return nil, translateRecipeError(err)
	}

	if err := insertChildren(ctx, tx, recipe.ID, input); err != nil {
		return nil, err
	}

	created, err := getRecipe(ctx, tx, recipe.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *recipeRepository) Replace(ctx context.Context, id string, input domain.RecipeInput) (*domain.Recipe, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const updateRecipe = `
	UPDATE recipes
	SET name = $2,
		text = $3,
		image = $4,
		cooking_time = $5
	WHERE id = $1
	`
	tag, err := tx.Exec(ctx, updateRecipe, id, input.Name, input.Text, input.Image, input.CookingTime)
	if err != nil {
		return nil, translateRecipeError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	// Clear-and-recreate: the child sets are replaced wholesale rather than
	// diffed. Both deletes and the re-inserts share this transaction, so no
	// reader ever observes a recipe with partial children.
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
		return nil, err
	}
	if err := insertChildren(ctx, tx, id, input); err != nil {
		return nil, err
	}

	updated, err := getRecipe(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	// Ingredient lines, tag links, favorites and cart entries all cascade
	// from the recipe row.
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}

func insertChildren(ctx context.Context, tx pgx.Tx, recipeID string, input domain.RecipeInput) error {
	const insertLine = `
	INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
	VALUES ($1, $2, $3)
	`
	for _, line := range input.Ingredients {
		if _, err := tx.Exec(ctx, insertLine, recipeID, line.IngredientID, line.Amount); err != nil {
			return translateRecipeError(err)
		}
	}

	const insertTag = `
	INSERT INTO recipe_tags (recipe_id, tag_id)
	VALUES ($1, $2)
	`
	for _, tagID := range input.TagIDs {
		if _, err := tx.Exec(ctx, insertTag, recipeID, tagID); err != nil {
			return translateRecipeError(err)
		}
	}
	return nil
}

func getRecipe(ctx context.Context, q querier, id string) (*domain.Recipe, error) {
	const query = `
	SELECT id, author_id, name, text, image, cooking_time, created_at
	FROM recipes
	WHERE id = $1
	`
	var recipe domain.Recipe
	if err := q.QueryRow(ctx, query, id).Scan(
		&recipe.ID,
		&recipe.AuthorID,
		&recipe.Name,
		&recipe.Text,
		&recipe.Image,
		&recipe.CookingTime,
		&recipe.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	lines, err := getLines(ctx, q, id)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = lines

	tags, err := getTags(ctx, q, id)
	if err != nil {
		return nil, err
	}
	recipe.Tags = tags

	return &recipe, nil
}

func getLines(ctx context.Context, q querier, recipeID string) ([]domain.IngredientLine, error) {
	const query = `
	SELECT ri.ingredient_id, i.name, i.measurement_unit, ri.amount
	FROM recipe_ingredients ri
	JOIN ingredients i ON i.id = ri.ingredient_id
	WHERE ri.recipe_id = $1
	ORDER BY i.name
	`
	rows, err := q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.IngredientLine
	for rows.Next() {
		var line domain.IngredientLine
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func getTags(ctx context.Context, q querier, recipeID string) ([]domain.Tag, error) {
	const query = `
	SELECT t.id, t.name, COALESCE(t.color, ''), t.slug
	FROM recipe_tags rt
	JOIN tags t ON t.id = rt.tag_id
	WHERE rt.recipe_id = $1
	ORDER BY t.name
	`
	rows, err := q.Query(ctx, query, recipeID)
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

// translateRecipeError maps constraint violations raised during aggregate
// writes onto domain outcomes. Anything unrecognized is a bug signal and is
// returned raw for the caller to classify as internal.
func translateRecipeError(err error) error {
	switch {
	case isUniqueViolation(err):
		if constraintName(err) == "recipes_name_key" {
			return domain.ErrRecipeNameTaken
		}
		return domain.WrapError(domain.ErrCodeConflict, "duplicate recipe child row", err)
	case isForeignKeyViolation(err):
		switch constraintName(err) {
		case "recipe_ingredients_ingredient_id_fkey":
			return domain.ErrIngredientNotFound
		case "recipe_tags_tag_id_fkey":
			return domain.ErrTagNotFound
		case "recipes_author_id_fkey":
			return domain.ErrUserNotFound
		}
		return domain.WrapError(domain.ErrCodeNotFound, "referenced entity missing", err)
	default:
		return err
	}
}
