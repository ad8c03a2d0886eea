package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const outcomeUnknown = "unknown"

// GenerateHandler serves the recipe generation endpoint
type GenerateHandler struct {
	generator   service.IRecipeGenerator
	authService service.IAuthService
	rateLimiter *middleware.RateLimiter
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewGenerateHandler creates a new generate handler. rateLimiter may be nil.
func NewGenerateHandler(generator service.IRecipeGenerator, authService service.IAuthService, rateLimiter *middleware.RateLimiter, m *metrics.Metrics, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator:   generator,
		authService: authService,
		rateLimiter: rateLimiter,
		metrics:     m,
		logger:      logger,
	}
}

func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	handlers := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.rateLimiter != nil {
		handlers = append(handlers, h.rateLimiter.Middleware())
	}
	handlers = append(handlers, h.GenerateRecipe)

	router.POST("/generate-recipe", handlers...)
}

// GenerateRecipe runs one generation and returns the parsed object as-is.
// Every failure, including an undecodable body, gets the same 500 response.
func (h *GenerateHandler) GenerateRecipe(c *gin.Context) {
	start := time.Now()

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, &service.GenerationError{Kind: service.KindRequest, Err: err}, start)
		return
	}

	raw, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, start)
		return
	}

	h.metrics.ObserveGeneration(metrics.OutcomeSuccess, time.Since(start))
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *GenerateHandler) fail(c *gin.Context, err error, start time.Time) {
	outcome := outcomeUnknown
	fields := []zap.Field{zap.Error(err)}
	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		outcome = string(genErr.Kind)
		fields = append(fields, zap.String("kind", outcome))
		if genErr.Retryable() {
			fields = append(fields, zap.Bool("retryable", true))
		}
	}
	if userID, ok := middleware.UserID(c); ok {
		fields = append(fields, zap.String("user_id", userID.String()))
	}
	h.metrics.ObserveGeneration(outcome, time.Since(start))
	h.logger.Error("recipe generation failed", fields...)

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
}
