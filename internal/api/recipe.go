package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/model"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// recipeView is a recipe as seen by one viewer
type recipeView struct {
	*model.Recipe
	TotalTime int  `json:"total_time"`
	IsOwner   bool `json:"is_owner"`
}

func viewRecipe(c *gin.Context, r *model.Recipe) recipeView {
	viewer, ok := middleware.UserID(c)
	return recipeView{Recipe: r, TotalTime: r.TotalTime(), IsOwner: ok && viewer == r.UserID}
}

func viewRecipes(c *gin.Context, recipes []*model.Recipe) []recipeView {
	out := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, viewRecipe(c, r))
	}
	return out
}

type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		logger:        logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.authService)
	optionalAuth := middleware.OptionalAuth(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optionalAuth, h.ListRecipes)
		recipes.GET("/:id", optionalAuth, h.GetRecipe)
		recipes.POST("", requireAuth, h.CreateRecipe)
		recipes.PUT("/:id", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, h.DeleteRecipe)
	}

	router.GET("/dashboard/recipes", requireAuth, h.ListMyRecipes)
}

// ListRecipes is the public feed
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := service.RecipeQuery{
		Search:     c.Query("q"),
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		OrderBy:    c.Query("order_by"),
		Ascending:  c.Query("order") == "asc",
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		q.Limit = n
	}

	recipes, err := h.recipeService.QueryRecipes(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": viewRecipes(c, recipes)})
}

// ListMyRecipes returns the caller's own recipes, newest first
func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipes, err := h.recipeService.ListUserRecipes(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list user recipes", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": viewRecipes(c, recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": viewRecipe(c, recipe)})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}
	recipe.UserID = userID

	created, err := h.recipeService.InsertRecipe(c.Request.Context(), recipe)
	if err != nil {
		h.logger.Error("failed to create recipe", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": viewRecipe(c, created)})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, recipe)
	if err != nil {
		h.handleStoreError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": viewRecipe(c, updated)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		h.handleStoreError(c, err, "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) handleStoreError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// bindRecipe decodes a RecipeRequest into a model. Blank ingredient and
// instruction lines are dropped, and at least one of each must remain.
func bindRecipe(c *gin.Context) (*model.Recipe, bool) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return nil, false
	}

	ingredients := model.JSONBStringArray(req.Ingredients).Compact()
	instructions := model.JSONBStringArray(req.Instructions).Compact()
	if len(ingredients) == 0 || len(instructions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one ingredient and one instruction are required"})
		return nil, false
	}

	recipe := &model.Recipe{
		Title:         req.Title,
		Description:   req.Description,
		Ingredients:   ingredients,
		Instructions:  instructions,
		PrepTime:      req.PrepTime,
		CookTime:      req.CookTime,
		Servings:      req.Servings,
		Difficulty:    req.Difficulty,
		Cuisine:       req.Cuisine,
		IsAIGenerated: req.IsAIGenerated,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = model.DifficultyEasy
	}
	if req.ImageURL != "" {
		recipe.ImageURL = &req.ImageURL
	}
	return recipe, true
}
