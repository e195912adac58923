package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/feastgo/backend/api/handler"
	"github.com/feastgo/backend/internal/config"
	"github.com/feastgo/backend/internal/infrastructure/monitor"
	pgInfra "github.com/feastgo/backend/internal/infrastructure/postgres"
	redisInfra "github.com/feastgo/backend/internal/infrastructure/redis"
	"github.com/feastgo/backend/internal/middleware"
	"github.com/feastgo/backend/internal/router"
	"github.com/feastgo/backend/internal/services/lifecycle"
	"github.com/feastgo/backend/pkg/httpcontext"
	"github.com/feastgo/backend/pkg/logger"
	"github.com/feastgo/backend/repository/postgres"
	redisRepo "github.com/feastgo/backend/repository/redis"
	authUC "github.com/feastgo/backend/usecase/auth"
	catalogUC "github.com/feastgo/backend/usecase/catalog"
	membershipUC "github.com/feastgo/backend/usecase/membership"
	recipeUC "github.com/feastgo/backend/usecase/recipe"
	shoppingUC "github.com/feastgo/backend/usecase/shoppinglist"
	userUC "github.com/feastgo/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	shoppingRepo := postgres.NewShoppingListRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	userUseCase := userUC.New(userRepo, zapLogger)
	catalogUseCase := catalogUC.New(catalogRepo, zapLogger)
	recipeUseCase := recipeUC.New(recipeRepo, zapLogger)
	membershipRegistry := membershipUC.New(membershipRepo, recipeRepo, userRepo, zapLogger)
	shoppingUseCase := shoppingUC.New(shoppingRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Catalog: apiHandler.NewCatalogHandler(catalogUseCase, ctxAdapter, zapLogger),
		Recipe:  apiHandler.NewRecipeHandler(recipeUseCase, membershipRegistry, shoppingUseCase, ctxAdapter, zapLogger),
		User:    apiHandler.NewUserHandler(userUseCase, membershipRegistry, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	optionalAuth := middleware.OptionalJWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware, optionalAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
