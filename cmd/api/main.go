package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/server"
	"github.com/pageza/recipe-share/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// No logger yet; zap's example logger keeps the output structured.
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "recipe-share-api",
		Environment: string(config.GetEnvironment()),
	})
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

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	llm, err := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMBaseURL)
	if err != nil {
		log.Fatal("failed to create LLM client", zap.Error(err))
	}
	extractor, err := service.NewJSONExtractor(cfg.LLMExtractor)
	if err != nil {
		log.Fatal("invalid extractor", zap.Error(err))
	}
	opts := []service.GeneratorOption{service.WithExtractor(extractor)}
	if cfg.LLMValidateOutput {
		opts = append(opts, service.WithValidation(service.NewRecipeValidator()))
	}
	generator := service.NewRecipeGenerator(llm, cfg.LLMModel, opts...)

	deps := server.Deps{
		DB:        db,
		Auth:      service.NewAuthService(db, cfg.JWTSecret),
		Recipes:   service.NewRecipeService(db),
		Generator: generator,
		Metrics:   m,
		Logger:    log,
	}

	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg, log)
		if err != nil {
			// Generation still works without a limiter.
			log.Warn("rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			deps.RateLimiter = middleware.NewGenerateRateLimiter(redisClient, cfg.GenerateRateLimit, cfg.GenerateRateWindow, log)
		}
	}

	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatal("failed to configure S3", zap.Error(err))
		}
		deps.Images = service.NewImageService(s3Cfg.Client, s3Cfg.BucketName, s3Cfg.PublicBaseURL)
	}

	srv := server.New(cfg, deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
