package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/service"
)

const testPassword = "testpassword123"

var testUsers = []struct {
	email    string
	username string
}{
	{"john.doe@example.com", "johndoe"},
	{"jane.smith@example.com", "janesmith"},
	{"alex.cook@example.com", "alexcook"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: "recipe-share-seed"})
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret)
	ctx := context.Background()

	for _, u := range testUsers {
		user, _, err := auth.Register(ctx, u.email, testPassword, u.username)
		switch {
		case errors.Is(err, service.ErrUserExists):
			log.Info("test user already exists", zap.String("email", u.email))
		case err != nil:
			log.Error("failed to create test user", zap.String("email", u.email), zap.Error(err))
		default:
			log.Info("created test user", zap.String("email", u.email), zap.String("id", user.ID.String()))
		}
	}

	log.Info("test users ready", zap.String("password", testPassword))
}
