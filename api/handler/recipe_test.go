package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
	membershipUC "github.com/feastgo/backend/usecase/membership"
	recipeUC "github.com/feastgo/backend/usecase/recipe"
	shoppingUC "github.com/feastgo/backend/usecase/shoppinglist"
)

type stubRecipeRepo struct {
	recipes map[string]*domain.Recipe
}

func (s *stubRecipeRepo) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	clone := *recipe
	return &clone, nil
}

func (s *stubRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, recipe := range s.recipes {
		out = append(out, *recipe)
	}
	return out, nil
}

func (s *stubRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe, input domain.RecipeInput) (*domain.Recipe, error) {
	return nil, nil
}

func (s *stubRecipeRepo) Replace(ctx context.Context, id string, input domain.RecipeInput) (*domain.Recipe, error) {
	return nil, nil
}

func (s *stubRecipeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(s.recipes, id)
	return nil
}

func (s *stubRecipeRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	return 0, nil
}

type relationKey struct {
	kind   domain.RelationKind
	user   string
	target string
}

type stubRelationRepo struct {
	rows map[relationKey]struct{}
}

func (s *stubRelationRepo) Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	key := relationKey{kind: kind, user: userID, target: targetID}
	if _, ok := s.rows[key]; ok {
		return domain.ErrAlreadyExists
	}
	s.rows[key] = struct{}{}
	return nil
}

func (s *stubRelationRepo) Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	key := relationKey{kind: kind, user: userID, target: targetID}
	if _, ok := s.rows[key]; !ok {
		return domain.ErrRelationNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *stubRelationRepo) Exists(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	_, ok := s.rows[relationKey{kind: kind, user: userID, target: targetID}]
	return ok, nil
}

func (s *stubRelationRepo) ListTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error) {
	return nil, nil
}

type stubAccountRepo struct {
	users map[string]*domain.User
}

func (s *stubAccountRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *stubAccountRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	return nil, nil
}

func (s *stubAccountRepo) Upsert(ctx context.Context, user *domain.User) error {
	s.users[user.ID] = user
	return nil
}

type stubCartRepo struct{}

func (s *stubCartRepo) CartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return nil, nil
}

func newTestRecipeHandler() (*RecipeHandler, *stubRelationRepo) {
	recipes := &stubRecipeRepo{
		recipes: map[string]*domain.Recipe{
			"recipe-1": {ID: "recipe-1", AuthorID: "user-a", Name: "Pancakes", CookingTime: 20},
		},
	}
	relations := &stubRelationRepo{rows: make(map[relationKey]struct{})}
	users := &stubAccountRepo{
		users: map[string]*domain.User{
			"user-a": {ID: "user-a", Username: "alice"},
			"user-b": {ID: "user-b", Username: "bob"},
		},
	}

	registry := membershipUC.New(relations, recipes, users, nil)
	handler := NewRecipeHandler(
		recipeUC.New(recipes, nil),
		registry,
		shoppingUC.New(&stubCartRepo{}, nil),
		nil,
		nil,
	)
	return handler, relations
}

func recipeEnvelope(t *testing.T, body []byte) struct {
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
} {
	t.Helper()
	var env struct {
		Data struct {
			IsFavorited      bool `json:"is_favorited"`
			IsInShoppingCart bool `json:"is_in_shopping_cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data
}

func TestGetRecipeAnonymous(t *testing.T) {
	handler, _ := newTestRecipeHandler()

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "recipe-1")

	handler.GetRecipe(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	view := recipeEnvelope(t, ctx.Response.Body())
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
}

func TestGetRecipeAnnotatesForCaller(t *testing.T) {
	handler, relations := newTestRecipeHandler()
	relations.rows[relationKey{kind: domain.RelationFavorite, user: "user-b", target: "recipe-1"}] = struct{}{}

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-User-ID", "user-b")
	ctx.SetUserValue("id", "recipe-1")

	handler.GetRecipe(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	view := recipeEnvelope(t, ctx.Response.Body())
	assert.True(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
}

func TestListRecipesAnonymous(t *testing.T) {
	handler, _ := newTestRecipeHandler()

	ctx := &fasthttp.RequestCtx{}
	handler.ListRecipes(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
}

func TestUnfavoriteRespondsEmptyNoContent(t *testing.T) {
	handler, relations := newTestRecipeHandler()
	relations.rows[relationKey{kind: domain.RelationFavorite, user: "user-b", target: "recipe-1"}] = struct{}{}

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.Header.Set("X-User-ID", "user-b")
	ctx.SetUserValue("id", "recipe-1")

	handler.Favorite(ctx)

	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
}

func TestDeleteRecipeRespondsEmptyNoContent(t *testing.T) {
	handler, _ := newTestRecipeHandler()

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.Header.Set("X-User-ID", "user-a")
	ctx.SetUserValue("id", "recipe-1")

	handler.DeleteRecipe(ctx)

	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
}
