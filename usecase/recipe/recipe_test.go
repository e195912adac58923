package recipe

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// fakeRecipeRepo mimics the transactional store: create and replace either
// apply the whole aggregate or leave the previous state untouched.
type fakeRecipeRepo struct {
	ingredients map[string]domain.Ingredient
	tags        map[string]domain.Tag
	recipes     map[string]*domain.Recipe
	names       map[string]string // recipe name -> id

	failNext error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		ingredients: map[string]domain.Ingredient{
			"ing-flour": {ID: "ing-flour", Name: "flour", MeasurementUnit: "g"},
			"ing-sugar": {ID: "ing-sugar", Name: "sugar", MeasurementUnit: "g"},
			"ing-egg":   {ID: "ing-egg", Name: "egg", MeasurementUnit: "pcs"},
		},
		tags: map[string]domain.Tag{
			"tag-breakfast": {ID: "tag-breakfast", Name: "breakfast", Slug: "breakfast"},
			"tag-dinner":    {ID: "tag-dinner", Name: "dinner", Slug: "dinner"},
		},
		recipes: make(map[string]*domain.Recipe),
		names:   make(map[string]string),
	}
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	clone := *recipe
	return &clone, nil
}

func (f *fakeRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, recipe := range f.recipes {
		if filter.AuthorID == "" || recipe.AuthorID == filter.AuthorID {
			out = append(out, *recipe)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe, input domain.RecipeInput) (*domain.Recipe, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	if _, taken := f.names[input.Name]; taken {
		return nil, domain.ErrRecipeNameTaken
	}

	built, err := f.build(recipe.AuthorID, "recipe-"+input.Name, input)
	if err != nil {
		return nil, err
	}
	f.recipes[built.ID] = built
	f.names[input.Name] = built.ID
	clone := *built
	return &clone, nil
}

func (f *fakeRecipeRepo) Replace(ctx context.Context, id string, input domain.RecipeInput) (*domain.Recipe, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	existing, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	if takenBy, taken := f.names[input.Name]; taken && takenBy != id {
		return nil, domain.ErrRecipeNameTaken
	}

	built, err := f.build(existing.AuthorID, id, input)
	if err != nil {
		return nil, err
	}
	delete(f.names, existing.Name)
	built.CreatedAt = existing.CreatedAt
	f.recipes[id] = built
	f.names[input.Name] = id
	clone := *built
	return &clone, nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id string) error {
	recipe, ok := f.recipes[id]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	delete(f.names, recipe.Name)
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	count := 0
	for _, recipe := range f.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepo) build(authorID, id string, input domain.RecipeInput) (*domain.Recipe, error) {
	recipe := &domain.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		Image:       input.Image,
		CookingTime: input.CookingTime,
	}
	for _, line := range input.Ingredients {
		ing, ok := f.ingredients[line.IngredientID]
		if !ok {
			return nil, domain.ErrIngredientNotFound
		}
		recipe.Ingredients = append(recipe.Ingredients, domain.IngredientLine{
			IngredientID:    ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	sort.Slice(recipe.Ingredients, func(i, j int) bool {
		return recipe.Ingredients[i].Name < recipe.Ingredients[j].Name
	})
	for _, tagID := range input.TagIDs {
		tag, ok := f.tags[tagID]
		if !ok {
			return nil, domain.ErrTagNotFound
		}
		recipe.Tags = append(recipe.Tags, tag)
	}
	return recipe, nil
}

func pancakesInput() domain.RecipeInput {
	return domain.RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: []domain.LineInput{
			{IngredientID: "ing-flour", Amount: 500},
			{IngredientID: "ing-sugar", Amount: 200},
		},
		TagIDs: []string{"tag-breakfast"},
	}
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	fetched, err := uc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, fetched.Ingredients, 2)
	amounts := map[string]int{}
	for _, line := range fetched.Ingredients {
		amounts[line.Name] = line.Amount
	}
	assert.Equal(t, map[string]int{"flour": 500, "sugar": 200}, amounts)

	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "breakfast", fetched.Tags[0].Name)
	assert.Equal(t, "user-a", fetched.AuthorID)
}

func TestCreateRecipeRejectsInvalidBeforeWrite(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)

	input := pancakesInput()
	input.Ingredients = nil

	_, err := uc.CreateRecipe(context.Background(), "user-a", input)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, repo.recipes)
}

func TestCreateRecipeNameConflict(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	_, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	_, err = uc.CreateRecipe(ctx, "user-b", pancakesInput())
	assert.ErrorIs(t, err, domain.ErrRecipeNameTaken)
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	update := domain.RecipeInput{
		Name:        "Pancakes deluxe",
		Text:        "Now with egg.",
		CookingTime: 25,
		Ingredients: []domain.LineInput{{IngredientID: "ing-egg", Amount: 3}},
		TagIDs:      []string{"tag-dinner"},
	}

	updated, err := uc.UpdateRecipe(ctx, created.ID, "user-a", update)
	require.NoError(t, err)

	// Entirely new child sets: nothing of the old lines or tags survives.
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "egg", updated.Ingredients[0].Name)
	assert.Equal(t, 3, updated.Ingredients[0].Amount)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateRecipeFailureKeepsOldState(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	repo.failNext = errors.New("connection reset")

	update := pancakesInput()
	update.CookingTime = 30
	_, err = uc.UpdateRecipe(ctx, created.ID, "user-a", update)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))

	fetched, err := uc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, fetched.CookingTime)
	assert.Len(t, fetched.Ingredients, 2)
}

func TestUpdateRecipeForbiddenForNonAuthor(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	_, err = uc.UpdateRecipe(ctx, created.ID, "user-b", pancakesInput())
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
}

func TestDeleteRecipe(t *testing.T) {
	repo := newFakeRecipeRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.CreateRecipe(ctx, "user-a", pancakesInput())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteRecipe(ctx, created.ID, "user-b"), domain.ErrNotRecipeAuthor)
	require.NoError(t, uc.DeleteRecipe(ctx, created.ID, "user-a"))

	_, err = uc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateMissingRecipe(t *testing.T) {
	uc := New(newFakeRecipeRepo(), nil)

	_, err := uc.UpdateRecipe(context.Background(), "recipe-missing", "user-a", pancakesInput())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestCreateRecipeUnknownIngredient(t *testing.T) {
	uc := New(newFakeRecipeRepo(), nil)

	input := pancakesInput()
	input.Ingredients = []domain.LineInput{{IngredientID: "ing-unknown", Amount: 10}}

	_, err := uc.CreateRecipe(context.Background(), "user-a", input)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}
