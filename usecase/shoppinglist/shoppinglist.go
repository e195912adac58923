package shoppinglist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// UseCase consolidates the ingredient lines of every recipe in a user's cart
// into one summed shopping list.
type UseCase struct {
	lists  repository.ShoppingListRepository
	logger *zap.Logger
}

func New(lists repository.ShoppingListRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		lists:  lists,
		logger: logger,
	}
}

// Aggregate groups all cart lines by (ingredient, unit), sums the amounts
// exactly and orders the result by name then unit. The ordering carries no
// meaning but keeps repeated calls byte-identical for the rendered download.
// An empty cart yields an empty list.
func (uc *UseCase) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	lines, err := uc.lists.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Consolidate(lines), nil
}

type groupKey struct {
	ingredientID string
	unit         string
}

// Consolidate sums cart lines grouped by ingredient identity and unit. The
// unit is the ingredient's own; two ingredients that happen to share a name
// stay separate because the key is the ingredient id.
func Consolidate(lines []domain.CartLine) []domain.ShoppingItem {
	totals := make(map[groupKey]*domain.ShoppingItem, len(lines))
	for _, line := range lines {
		key := groupKey{ingredientID: line.IngredientID, unit: line.MeasurementUnit}
		if item, ok := totals[key]; ok {
			item.Amount += int64(line.Amount)
			continue
		}
		totals[key] = &domain.ShoppingItem{
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          int64(line.Amount),
		}
	}

	items := make([]domain.ShoppingItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

// Render produces the plain-text body served as the shopping list download.
func Render(items []domain.ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
