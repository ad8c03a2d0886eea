package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/model"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, username string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// IRecipeService defines the recipe store used by the handlers
type IRecipeService interface {
	QueryRecipes(ctx context.Context, q RecipeQuery) ([]*model.Recipe, error)
	ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	InsertRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id, userID uuid.UUID, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
}

// IRecipeGenerator defines the recipe generation flow
type IRecipeGenerator interface {
	Generate(ctx context.Context, req types.GenerateRecipeRequest) (json.RawMessage, error)
}

// IImageService defines the interface for recipe image storage
type IImageService interface {
	UploadRecipeImage(ctx context.Context, userID uuid.UUID, filename, contentType string, size int64, body io.Reader) (string, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
	_ IRecipeGenerator = (*RecipeGenerator)(nil)
	_ IImageService    = (*ImageService)(nil)
	_ TextGenerator    = (*LLMService)(nil)
)
