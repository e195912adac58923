package shoppinglist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastgo/backend/domain"
)

var (
	pancakes = []domain.CartLine{
		{IngredientID: "ing-flour", Name: "flour", MeasurementUnit: "g", Amount: 500},
		{IngredientID: "ing-egg", Name: "egg", MeasurementUnit: "pcs", Amount: 2},
	}
	omelette = []domain.CartLine{
		{IngredientID: "ing-egg", Name: "egg", MeasurementUnit: "pcs", Amount: 3},
	}
)

func TestConsolidateSumsByIngredientAndUnit(t *testing.T) {
	items := Consolidate(append(append([]domain.CartLine{}, pancakes...), omelette...))

	require.Len(t, items, 2)
	assert.Equal(t, domain.ShoppingItem{Name: "egg", MeasurementUnit: "pcs", Amount: 5}, items[0])
	assert.Equal(t, domain.ShoppingItem{Name: "flour", MeasurementUnit: "g", Amount: 500}, items[1])
}

func TestConsolidateOrderIndependent(t *testing.T) {
	forward := Consolidate(append(append([]domain.CartLine{}, pancakes...), omelette...))
	backward := Consolidate(append(append([]domain.CartLine{}, omelette...), pancakes...))

	assert.Equal(t, forward, backward)
}

func TestConsolidateAdditive(t *testing.T) {
	combined := Consolidate(append(append([]domain.CartLine{}, pancakes...), omelette...))
	separate := map[string]int64{}
	for _, items := range [][]domain.ShoppingItem{Consolidate(pancakes), Consolidate(omelette)} {
		for _, item := range items {
			separate[item.Name+"/"+item.MeasurementUnit] += item.Amount
		}
	}

	for _, item := range combined {
		assert.Equal(t, separate[item.Name+"/"+item.MeasurementUnit], item.Amount)
	}
}

func TestConsolidateKeepsSameNameDifferentUnitApart(t *testing.T) {
	items := Consolidate([]domain.CartLine{
		{IngredientID: "ing-milk-l", Name: "milk", MeasurementUnit: "l", Amount: 1},
		{IngredientID: "ing-milk-g", Name: "milk", MeasurementUnit: "g", Amount: 200},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "g", items[0].MeasurementUnit)
	assert.Equal(t, "l", items[1].MeasurementUnit)
}

func TestConsolidateEmpty(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
}

func TestRenderDeterministic(t *testing.T) {
	items := Consolidate(append(append([]domain.CartLine{}, pancakes...), omelette...))

	want := "Shopping list:\negg (pcs) - 5\nflour (g) - 500\n"
	assert.Equal(t, want, Render(items))
	assert.Equal(t, Render(items), Render(items))
}

type stubListRepo struct {
	lines []domain.CartLine
}

func (s *stubListRepo) CartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.lines, nil
}

func TestAggregateEmptyCart(t *testing.T) {
	uc := New(&stubListRepo{}, nil)

	items, err := uc.Aggregate(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregateScenario(t *testing.T) {
	repo := &stubListRepo{lines: pancakes}
	uc := New(repo, nil)

	items, err := uc.Aggregate(context.Background(), "user-b")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Amount)

	// Adding the omelette to the cart raises the egg total only.
	repo.lines = append(repo.lines, omelette...)
	items, err = uc.Aggregate(context.Background(), "user-b")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ShoppingItem{Name: "egg", MeasurementUnit: "pcs", Amount: 5}, items[0])
	assert.Equal(t, domain.ShoppingItem{Name: "flour", MeasurementUnit: "g", Amount: 500}, items[1])
}
