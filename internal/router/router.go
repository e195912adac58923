package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/feastgo/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Catalog *apiHandler.CatalogHandler
	Recipe  *apiHandler.RecipeHandler
	User    *apiHandler.UserHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware, optionalAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Registration and reference data need no authentication.
	r.POST("/api/v1/users", handlers.User.Register)
	r.GET("/api/v1/tags", handlers.Catalog.ListTags)
	r.GET("/api/v1/tags/{id}", handlers.Catalog.GetTag)
	r.GET("/api/v1/ingredients", handlers.Catalog.ListIngredients)
	r.GET("/api/v1/ingredients/{id}", handlers.Catalog.GetIngredient)

	// Recipe reads are public; a token only adds the caller's membership flags.
	r.GET("/api/v1/recipes", optionalAuth(handlers.Recipe.ListRecipes))
	r.GET("/api/v1/recipes/{id}", optionalAuth(handlers.Recipe.GetRecipe))

	// Protected routes
	r.POST("/api/v1/recipes", authMiddleware(handlers.Recipe.CreateRecipe))
	r.GET("/api/v1/recipes/download_shopping_cart", authMiddleware(handlers.Recipe.DownloadShoppingCart))
	r.PUT("/api/v1/recipes/{id}", authMiddleware(handlers.Recipe.UpdateRecipe))
	r.DELETE("/api/v1/recipes/{id}", authMiddleware(handlers.Recipe.DeleteRecipe))

	r.POST("/api/v1/recipes/{id}/favorite", authMiddleware(handlers.Recipe.Favorite))
	r.DELETE("/api/v1/recipes/{id}/favorite", authMiddleware(handlers.Recipe.Favorite))
	r.POST("/api/v1/recipes/{id}/shopping_cart", authMiddleware(handlers.Recipe.ShoppingCart))
	r.DELETE("/api/v1/recipes/{id}/shopping_cart", authMiddleware(handlers.Recipe.ShoppingCart))

	r.GET("/api/v1/users/me", authMiddleware(handlers.User.Me))
	r.PUT("/api/v1/users/me", authMiddleware(handlers.User.UpdateMe))
	r.GET("/api/v1/users/subscriptions", authMiddleware(handlers.User.Subscriptions))
	r.POST("/api/v1/users/{id}/subscribe", authMiddleware(handlers.User.Subscribe))
	r.DELETE("/api/v1/users/{id}/subscribe", authMiddleware(handlers.User.Subscribe))

	return r
}
