package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/internal/config"
	pgInfra "github.com/feastgo/backend/internal/infrastructure/postgres"
	"github.com/feastgo/backend/pkg/logger"
	"github.com/feastgo/backend/repository/postgres"
	catalogUC "github.com/feastgo/backend/usecase/catalog"
	userUC "github.com/feastgo/backend/usecase/user"
)

// loaddata seeds reference tables and user accounts from JSON files.
//
//	loaddata -ingredients assets/data/ingredients.json -tags assets/data/tags.json -users assets/data/users.json
func main() {
	ingredientsPath := flag.String("ingredients", "", "path to an ingredients JSON file")
	tagsPath := flag.String("tags", "", "path to a tags JSON file")
	usersPath := flag.String("users", "", "path to a users JSON file")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" && *usersPath == "" {
		log.Fatal("nothing to load: pass -ingredients, -tags and/or -users")
	}

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

	ctx := context.Background()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	catalog := catalogUC.New(postgres.NewCatalogRepository(pool), zapLogger)
	users := userUC.New(postgres.NewUserRepository(pool), zapLogger)

	if *ingredientsPath != "" {
		var ingredients []domain.Ingredient
		if err := readJSON(*ingredientsPath, &ingredients); err != nil {
			zapLogger.Fatal("reading ingredients file failed", zap.Error(err))
		}
		count, err := catalog.ImportIngredients(ctx, ingredients)
		if err != nil {
			zapLogger.Fatal("ingredient import failed", zap.Int("imported", count), zap.Error(err))
		}
	}

	if *tagsPath != "" {
		var tags []domain.Tag
		if err := readJSON(*tagsPath, &tags); err != nil {
			zapLogger.Fatal("reading tags file failed", zap.Error(err))
		}
		count, err := catalog.ImportTags(ctx, tags)
		if err != nil {
			zapLogger.Fatal("tag import failed", zap.Int("imported", count), zap.Error(err))
		}
	}

	if *usersPath != "" {
		var accounts []domain.User
		if err := readJSON(*usersPath, &accounts); err != nil {
			zapLogger.Fatal("reading users file failed", zap.Error(err))
		}
		count, err := users.ImportUsers(ctx, accounts)
		if err != nil {
			zapLogger.Fatal("user import failed", zap.Int("imported", count), zap.Error(err))
		}
	}
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
