package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/feastgo/backend/api/transport"
	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/pkg/httpcontext"
	"github.com/feastgo/backend/repository"
	catalogUC "github.com/feastgo/backend/usecase/catalog"
)

type CatalogHandler struct {
	baseHandler
	catalog *catalogUC.UseCase
}

func NewCatalogHandler(catalog *catalogUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		baseHandler: newBaseHandler(adapter, logger),
		catalog:     catalog,
	}
}

// @Summary List tags
// @Tags catalog
// @Router /api/v1/tags [get]
func (h *CatalogHandler) ListTags(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tags, err := h.catalog.ListTags(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tags)
}

// @Summary Get tag
// @Tags catalog
// @Router /api/v1/tags/{id} [get]
func (h *CatalogHandler) GetTag(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing tag id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tag, err := h.catalog.GetTag(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tag)
}

// @Summary List ingredients
// @Tags catalog
// @Router /api/v1/ingredients [get]
func (h *CatalogHandler) ListIngredients(ctx *fasthttp.RequestCtx) {
	filter := repository.IngredientFilter{
		NamePrefix: string(ctx.QueryArgs().Peek("name")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ingredients, err := h.catalog.ListIngredients(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, ingredients)
}

// @Summary Get ingredient
// @Tags catalog
// @Router /api/v1/ingredients/{id} [get]
func (h *CatalogHandler) GetIngredient(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing ingredient id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ingredient, err := h.catalog.GetIngredient(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, ingredient)
}
