package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RecipeInput {
	return RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: []LineInput{
			{IngredientID: "flour", Amount: 500},
			{IngredientID: "egg", Amount: 2},
		},
		TagIDs: []string{"breakfast"},
	}
}

func TestRecipeInputValidateOK(t *testing.T) {
	in := validInput()
	require.Nil(t, in.Validate())
}

func TestRecipeInputValidateOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RecipeInput)
		wantField string
	}{
		{
			name:      "missing ingredients",
			mutate:    func(in *RecipeInput) { in.Ingredients = nil },
			wantField: "ingredients",
		},
		{
			name: "missing ingredients reported before missing tags",
			mutate: func(in *RecipeInput) {
				in.Ingredients = nil
				in.TagIDs = nil
			},
			wantField: "ingredients",
		},
		{
			name:      "missing tags",
			mutate:    func(in *RecipeInput) { in.TagIDs = nil },
			wantField: "tags",
		},
		{
			name: "zero amount",
			mutate: func(in *RecipeInput) {
				in.Ingredients[1].Amount = 0
			},
			wantField: "ingredients",
		},
		{
			name: "negative amount reported before bad cooking time",
			mutate: func(in *RecipeInput) {
				in.Ingredients[0].Amount = -5
				in.CookingTime = 0
			},
			wantField: "ingredients",
		},
		{
			name:      "zero cooking time",
			mutate:    func(in *RecipeInput) { in.CookingTime = 0 },
			wantField: "cooking_time",
		},
		{
			name: "cooking time positivity reported before duplicate ingredient",
			mutate: func(in *RecipeInput) {
				in.CookingTime = 0
				in.Ingredients = append(in.Ingredients, LineInput{IngredientID: "flour", Amount: 1})
			},
			wantField: "cooking_time",
		},
		{
			name: "duplicate ingredient",
			mutate: func(in *RecipeInput) {
				in.Ingredients = append(in.Ingredients, LineInput{IngredientID: "flour", Amount: 1})
			},
			wantField: "ingredients",
		},
		{
			name: "duplicate ingredient reported before duplicate tag",
			mutate: func(in *RecipeInput) {
				in.Ingredients = append(in.Ingredients, LineInput{IngredientID: "flour", Amount: 1})
				in.TagIDs = append(in.TagIDs, "breakfast")
			},
			wantField: "ingredients",
		},
		{
			name: "duplicate tag",
			mutate: func(in *RecipeInput) {
				in.TagIDs = append(in.TagIDs, "breakfast")
			},
			wantField: "tags",
		},
		{
			name: "duplicate tag reported before cooking time bound",
			mutate: func(in *RecipeInput) {
				in.TagIDs = append(in.TagIDs, "breakfast")
				in.CookingTime = MaxCookingTime + 1
			},
			wantField: "tags",
		},
		{
			name:      "cooking time over bound",
			mutate:    func(in *RecipeInput) { in.CookingTime = MaxCookingTime + 1 },
			wantField: "cooking_time",
		},
		{
			name: "cooking time bound reported before amount bound",
			mutate: func(in *RecipeInput) {
				in.CookingTime = MaxCookingTime + 1
				in.Ingredients[0].Amount = MaxLineAmount + 1
			},
			wantField: "cooking_time",
		},
		{
			name: "amount over bound",
			mutate: func(in *RecipeInput) {
				in.Ingredients[0].Amount = MaxLineAmount + 1
			},
			wantField: "ingredients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			require.NotNil(t, err)
			assert.Equal(t, ErrCodeInvalid, err.Code)
			assert.Equal(t, tt.wantField, err.Field)
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	assert.True(t, IsValidHexColor("#FFAA00"))
	assert.True(t, IsValidHexColor("#fff"))
	assert.False(t, IsValidHexColor("FFAA00"))
	assert.False(t, IsValidHexColor("#FFAA0"))
	assert.False(t, IsValidHexColor("#GGGGGG"))
	assert.False(t, IsValidHexColor(""))
}
