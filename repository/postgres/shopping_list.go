package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

type shoppingListRepository struct {
	pool *pgxpool.Pool
}

// NewShoppingListRepository returns the read-only store behind the shopping
// list aggregator.
func NewShoppingListRepository(pool *pgxpool.Pool) repository.ShoppingListRepository {
	return &shoppingListRepository{pool: pool}
}

// CartLines returns every ingredient line of every recipe currently in the
// user's cart, hydrated with the ingredient's name and unit. An empty cart
// yields no rows, not an error.
func (r *shoppingListRepository) CartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const query = `
	SELECT ri.ingredient_id, i.name, i.measurement_unit, ri.amount
	FROM cart_entries ce
	JOIN recipe_ingredients ri ON ri.recipe_id = ce.recipe_id
	JOIN ingredients i ON i.id = ri.ingredient_id
	WHERE ce.user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
