package domain

// CartLine is one ingredient line contributed by a recipe currently in a
// user's shopping cart, hydrated with the ingredient's name and unit.
type CartLine struct {
	IngredientID    string
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingItem is one consolidated entry of the shopping list: all cart
// lines for the same (ingredient, unit) summed together.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
