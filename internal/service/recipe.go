package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/model"
)

// ErrRecipeNotFound is returned when a recipe does not exist or is not owned by the caller
var ErrRecipeNotFound = errors.New("recipe not found")

const (
	DefaultRecipeLimit = 6
	MaxRecipeLimit     = 50
)

var recipeOrderColumns = map[string]string{
	"created_at": "recipes.created_at",
	"title":      "recipes.title",
	"prep_time":  "recipes.prep_time",
	"cook_time":  "recipes.cook_time",
}

// RecipeQuery filters, orders and limits a recipe listing
type RecipeQuery struct {
	UserID     *uuid.UUID
	Search     string
	Cuisine    string
	Difficulty string
	OrderBy    string
	Ascending  bool
	Limit      int
}

// RecipeService handles recipe persistence
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// QueryRecipes lists recipes with their author profile, newest first by default
func (s *RecipeService) QueryRecipes(ctx context.Context, q RecipeQuery) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{}).Preload("Author")

	if q.UserID != nil {
		query = query.Where("recipes.user_id = ?", *q.UserID)
	}
	if q.Cuisine != "" {
		query = query.Where("LOWER(recipes.cuisine) = ?", strings.ToLower(q.Cuisine))
	}
	if q.Difficulty != "" {
		query = query.Where("recipes.difficulty = ?", q.Difficulty)
	}

	rankedBySimilarity := false
	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?", like, like)
		// An explicit order wins over similarity ranking.
		if s.db.Dialector.Name() == "postgres" && q.OrderBy == "" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "recipes.embedding <-> ?", Vars: []interface{}{vec}},
			})
			rankedBySimilarity = true
		}
	}

	if !rankedBySimilarity {
		column, ok := recipeOrderColumns[q.OrderBy]
		if !ok {
			column = recipeOrderColumns["created_at"]
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column, Raw: true}, Desc: !q.Ascending})
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultRecipeLimit
	}
	if limit > MaxRecipeLimit {
		limit = MaxRecipeLimit
	}

	var recipes []*model.Recipe
	if err := query.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	return recipes, nil
}

// ListUserRecipes returns every recipe owned by userID, newest first
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("recipes.user_id = ?", userID).
		Order("recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// InsertRecipe stores a new recipe
func (s *RecipeService) InsertRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Embedding = recipeEmbedding(recipe.Title, recipe.Description)
	if err := s.db.WithContext(ctx).Omit("Author").Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces the editable fields of a recipe owned by userID
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Embedding = recipeEmbedding(recipe.Title, recipe.Description)
	result := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select("title", "description", "ingredients", "instructions", "prep_time", "cook_time",
			"servings", "difficulty", "cuisine", "image_url", "is_ai_generated", "embedding").
		Updates(recipe)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecipeNotFound
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe owned by userID
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Recipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
