package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/model"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const (
	seedEmail    = "seed-chef@example.com"
	seedUsername = "seedchef"
	seedPassword = "testpassword123"
)

var seedRequests = []types.GenerateRecipeRequest{
	{Cuisine: "Italian", Ingredients: "pasta, tomatoes, basil"},
	{Cuisine: "Indian", Difficulty: "medium", Ingredients: "chickpeas, spinach"},
	{Cuisine: "Mexican", DietaryRestrictions: "vegetarian"},
	{Cuisine: "Japanese", Difficulty: "hard"},
	{Cuisine: "Thai", Ingredients: "coconut milk, shrimp"},
	{Cuisine: "French", Difficulty: "hard", Ingredients: "butter, eggs"},
	{Cuisine: "Greek", DietaryRestrictions: "gluten-free"},
	{Cuisine: "Korean", Ingredients: "beef, rice, kimchi"},
	{Cuisine: "Moroccan", Ingredients: "lamb, apricots"},
	{Difficulty: "easy", DietaryRestrictions: "vegan", Ingredients: "oats, berries"},
}

func main() {
	count := flag.Int("n", len(seedRequests), "Number of recipes to generate")
	batchSize := flag.Int("batch", 5, "Recipes per batch before pausing")
	delay := flag.Duration("delay", 2*time.Second, "Pause between batches")
	flag.Parse()

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

	llm, err := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMBaseURL)
	if err != nil {
		log.Fatal("failed to create LLM client", zap.Error(err))
	}
	extractor, err := service.NewJSONExtractor(cfg.LLMExtractor)
	if err != nil {
		log.Fatal("invalid extractor", zap.Error(err))
	}
	// Seeded recipes go straight into the feed, so always check their shape.
	generator := service.NewRecipeGenerator(llm, cfg.LLMModel,
		service.WithExtractor(extractor),
		service.WithValidation(service.NewRecipeValidator()),
	)
	auth := service.NewAuthService(db, cfg.JWTSecret)
	recipes := service.NewRecipeService(db)

	ctx := context.Background()
	userID, err := seedUser(ctx, auth)
	if err != nil {
		log.Fatal("failed to create seed user", zap.Error(err))
	}

	created := 0
	for i := 0; i < *count; i++ {
		if i > 0 && *batchSize > 0 && i%*batchSize == 0 {
			log.Info("pausing between batches", zap.Int("done", i))
			time.Sleep(*delay)
		}

		req := seedRequests[i%len(seedRequests)]
		raw, err := generator.Generate(ctx, req)
		if err != nil {
			log.Warn("failed to generate recipe", zap.Error(err), zap.String("cuisine", req.Cuisine))
			continue
		}

		recipe, err := toRecipe(raw, userID)
		if err != nil {
			log.Warn("failed to decode recipe", zap.Error(err))
			continue
		}
		saved, err := recipes.InsertRecipe(ctx, recipe)
		if err != nil {
			log.Warn("failed to save recipe", zap.Error(err))
			continue
		}

		created++
		log.Info("created recipe", zap.String("id", saved.ID.String()), zap.String("title", saved.Title))
	}

	log.Info("seeding finished", zap.Int("created", created), zap.Int("requested", *count))
}

func seedUser(ctx context.Context, auth *service.AuthService) (uuid.UUID, error) {
	user, _, err := auth.Register(ctx, seedEmail, seedPassword, seedUsername)
	if errors.Is(err, service.ErrUserExists) {
		user, _, err = auth.Login(ctx, seedEmail, seedPassword)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func toRecipe(raw json.RawMessage, userID uuid.UUID) (*model.Recipe, error) {
	var g service.GeneratedRecipe
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &model.Recipe{
		UserID:        userID,
		Title:         g.Title,
		Description:   g.Description,
		Ingredients:   model.JSONBStringArray(g.Ingredients).Compact(),
		Instructions:  model.JSONBStringArray(g.Instructions).Compact(),
		PrepTime:      g.PrepTime,
		CookTime:      g.CookTime,
		Servings:      g.Servings,
		Difficulty:    g.Difficulty,
		Cuisine:       g.Cuisine,
		IsAIGenerated: true,
	}, nil
}
