package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// Deps are the collaborators the HTTP layer is built from.
// Images and RateLimiter are optional.
type Deps struct {
	DB          *gorm.DB
	Auth        service.IAuthService
	Recipes     service.IRecipeService
	Generator   service.IRecipeGenerator
	Images      service.IImageService
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a new server instance with all routes registered
func New(cfg *config.Config, deps Deps) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		deps.Metrics.Middleware(),
	)

	s := &Server{
		router: router,
		db:     deps.DB,
		logger: deps.Logger,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.GET("/healthz", s.healthCheck)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(v1)
	api.NewRecipeHandler(deps.Recipes, deps.Auth, deps.Logger).RegisterRoutes(v1)
	api.NewGenerateHandler(deps.Generator, deps.Auth, deps.RateLimiter, deps.Metrics, deps.Logger).RegisterRoutes(v1)
	if deps.Images != nil {
		api.NewImageHandler(deps.Images, deps.Auth, deps.Logger).RegisterRoutes(v1)
	}

	return s
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, s.db); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
