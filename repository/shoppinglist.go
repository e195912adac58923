package repository

import (
	"context"

	"github.com/feastgo/backend/domain"
)

// ShoppingListRepository reads the raw ingredient lines contributed by every
// recipe in a user's cart, hydrated with ingredient names and units. The
// consolidation itself happens in the use case.
type ShoppingListRepository interface {
	CartLines(ctx context.Context, userID string) ([]domain.CartLine, error)
}
