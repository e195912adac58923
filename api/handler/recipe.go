package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/feastgo/backend/api/transport"
	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/pkg/httpcontext"
	"github.com/feastgo/backend/repository"
	membershipUC "github.com/feastgo/backend/usecase/membership"
	recipeUC "github.com/feastgo/backend/usecase/recipe"
	shoppingUC "github.com/feastgo/backend/usecase/shoppinglist"
)

type RecipeHandler struct {
	baseHandler
	recipes     *recipeUC.UseCase
	memberships *membershipUC.Registry
	shopping    *shoppingUC.UseCase
}

func NewRecipeHandler(
	recipes *recipeUC.UseCase,
	memberships *membershipUC.Registry,
	shopping *shoppingUC.UseCase,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		recipes:     recipes,
		memberships: memberships,
		shopping:    shopping,
	}
}

// recipeView is the read representation: the aggregate annotated with the
// caller's favorite/cart membership.
type recipeView struct {
	domain.Recipe
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

// @Summary List recipes
// @Tags recipes
// @Router /api/v1/recipes [get]
func (h *RecipeHandler) ListRecipes(ctx *fasthttp.RequestCtx) {
	// Recipe reads are public; an identity only enriches the view.
	userID := h.optionalUserID(ctx)

	filter := repository.RecipeFilter{
		AuthorID: string(ctx.QueryArgs().Peek("author")),
		Limit:    parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:   parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	recipes, err := h.recipes.ListRecipes(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	views := make([]recipeView, 0, len(recipes))
	for i := range recipes {
		view, err := h.annotate(stdCtx, userID, &recipes[i])
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		views = append(views, *view)
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}

// @Summary Get recipe
// @Tags recipes
// @Router /api/v1/recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(ctx *fasthttp.RequestCtx) {
	userID := h.optionalUserID(ctx)
	id, ok := h.recipeID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	recipe, err := h.recipes.GetRecipe(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	view, err := h.annotate(stdCtx, userID, recipe)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Create recipe
// @Tags recipes
// @Router /api/v1/recipes [post]
func (h *RecipeHandler) CreateRecipe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	input, ok := h.parseRecipe(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.recipes.CreateRecipe(stdCtx, userID, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, recipeView{Recipe: *created})
}

// @Summary Update recipe
// @Tags recipes
// @Router /api/v1/recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.recipeID(ctx)
	if !ok {
		return
	}
	input, ok := h.parseRecipe(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.recipes.UpdateRecipe(stdCtx, id, userID, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	view, err := h.annotate(stdCtx, userID, updated)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Delete recipe
// @Tags recipes
// @Router /api/v1/recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.recipeID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.recipes.DeleteRecipe(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// Favorite handles POST/DELETE /recipes/{id}/favorite.
func (h *RecipeHandler) Favorite(ctx *fasthttp.RequestCtx) {
	h.toggleRelation(ctx, domain.RelationFavorite)
}

// ShoppingCart handles POST/DELETE /recipes/{id}/shopping_cart.
func (h *RecipeHandler) ShoppingCart(ctx *fasthttp.RequestCtx) {
	h.toggleRelation(ctx, domain.RelationCart)
}

func (h *RecipeHandler) toggleRelation(ctx *fasthttp.RequestCtx, kind domain.RelationKind) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.recipeID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if ctx.IsDelete() {
		if err := h.memberships.Remove(stdCtx, kind, userID, id); err != nil {
			h.respondError(ctx, err)
			return
		}
		h.respondNoContent(ctx)
		return
	}

	if err := h.memberships.Add(stdCtx, kind, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// DownloadShoppingCart serves the consolidated shopping list as a plain-text
// attachment.
func (h *RecipeHandler) DownloadShoppingCart(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.shopping.Aggregate(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBodyString(shoppingUC.Render(items))
}

func (h *RecipeHandler) annotate(stdCtx context.Context, userID string, recipe *domain.Recipe) (*recipeView, error) {
	if userID == "" {
		return &recipeView{Recipe: *recipe}, nil
	}
	favorited, err := h.memberships.IsMember(stdCtx, domain.RelationFavorite, userID, recipe.ID)
	if err != nil {
		return nil, err
	}
	inCart, err := h.memberships.IsMember(stdCtx, domain.RelationCart, userID, recipe.ID)
	if err != nil {
		return nil, err
	}
	return &recipeView{Recipe: *recipe, IsFavorited: favorited, IsInShoppingCart: inCart}, nil
}

func (h *RecipeHandler) parseRecipe(ctx *fasthttp.RequestCtx) (domain.RecipeInput, bool) {
	var req transport.RecipeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return domain.RecipeInput{}, false
	}

	lines := make([]domain.LineInput, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		lines = append(lines, domain.LineInput{IngredientID: line.ID, Amount: line.Amount})
	}

	return domain.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		Ingredients: lines,
		TagIDs:      req.Tags,
	}, true
}

func (h *RecipeHandler) recipeID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing recipe id", nil))
		return "", false
	}
	return id, true
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
