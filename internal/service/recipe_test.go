package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/model"
	"github.com/pageza/recipe-share/backend/internal/service"
)

func createUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	user, _, err := service.NewAuthService(db, "test-secret").
		Register(context.Background(), username+"@example.com", "supersecret", username)
	require.NoError(t, err)
	return user.ID
}

func newRecipe(userID uuid.UUID, title, cuisine string) *model.Recipe {
	return &model.Recipe{
		UserID:       userID,
		Title:        title,
		Description:  "A " + title,
		Ingredients:  model.JSONBStringArray{"salt"},
		Instructions: model.JSONBStringArray{"cook"},
		Servings:     2,
		Difficulty:   model.DifficultyEasy,
		Cuisine:      cuisine,
	}
}

func TestInsertAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	userID := createUser(t, db, "chef")

	r := newRecipe(userID, "Pad Thai", "Thai")
	r.IsAIGenerated = true
	created, err := svc.InsertRecipe(ctx, r)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsAIGenerated)
	require.NotNil(t, created.Author)
	assert.Equal(t, "chef", created.Author.Username)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JSONBStringArray{"salt"}, got.Ingredients)
	assert.Len(t, got.Embedding.Slice(), 3)

	_, err = svc.GetRecipe(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestQueryRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		owner := alice
		if i%2 == 1 {
			owner = bob
		}
		r := newRecipe(owner, fmt.Sprintf("Recipe %d", i), "Italian")
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if i == 3 {
			r.Cuisine = "Mexican"
			r.Difficulty = model.DifficultyHard
			r.Title = "Spicy Tacos"
		}
		_, err := svc.InsertRecipe(ctx, r)
		require.NoError(t, err)
	}

	t.Run("feed defaults to six newest", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{})
		require.NoError(t, err)
		require.Len(t, recipes, service.DefaultRecipeLimit)
		assert.Equal(t, "Recipe 7", recipes[0].Title)
		for i := 1; i < len(recipes); i++ {
			assert.False(t, recipes[i].CreatedAt.After(recipes[i-1].CreatedAt))
		}
		assert.NotNil(t, recipes[0].Author)
	})

	t.Run("limit is capped", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{Limit: 1000})
		require.NoError(t, err)
		assert.Len(t, recipes, 8)
	})

	t.Run("owner filter", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{UserID: &alice, Limit: 50})
		require.NoError(t, err)
		assert.Len(t, recipes, 4)
		for _, r := range recipes {
			assert.Equal(t, alice, r.UserID)
		}
	})

	t.Run("cuisine and difficulty", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{Cuisine: "mexican", Difficulty: model.DifficultyHard})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Spicy Tacos", recipes[0].Title)
	})

	t.Run("search", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{Search: "TACO"})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Spicy Tacos", recipes[0].Title)
	})

	t.Run("order by title ascending", func(t *testing.T) {
		recipes, err := svc.QueryRecipes(ctx, service.RecipeQuery{OrderBy: "title", Ascending: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Recipe 0", recipes[0].Title)
		assert.Equal(t, "Recipe 1", recipes[1].Title)
	})
}

func TestUpdateRecipe_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	created, err := svc.InsertRecipe(ctx, newRecipe(alice, "Stew", "French"))
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, created.ID, bob, newRecipe(bob, "Stolen", "French"))
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	update := newRecipe(alice, "Better Stew", "French")
	update.Ingredients = model.JSONBStringArray{"beef", "wine"}
	updated, err := svc.UpdateRecipe(ctx, created.ID, alice, update)
	require.NoError(t, err)
	assert.Equal(t, "Better Stew", updated.Title)
	assert.Equal(t, model.JSONBStringArray{"beef", "wine"}, updated.Ingredients)
	assert.Equal(t, alice, updated.UserID)
}

func TestDeleteRecipe_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	created, err := svc.InsertRecipe(ctx, newRecipe(alice, "Stew", "French"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID, bob), service.ErrRecipeNotFound)
	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, alice))

	_, err = svc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID, alice), service.ErrRecipeNotFound)
}

func TestListUserRecipes_Uncapped(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	total := service.MaxRecipeLimit + 5
	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < total; i++ {
		r := newRecipe(alice, fmt.Sprintf("Alice %d", i), "Italian")
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := svc.InsertRecipe(ctx, r)
		require.NoError(t, err)
	}
	_, err := svc.InsertRecipe(ctx, newRecipe(bob, "Bob Soup", "French"))
	require.NoError(t, err)

	recipes, err := svc.ListUserRecipes(ctx, alice)
	require.NoError(t, err)
	require.Len(t, recipes, total)
	assert.Equal(t, fmt.Sprintf("Alice %d", total-1), recipes[0].Title)
	assert.Equal(t, "Alice 0", recipes[total-1].Title)
	for _, r := range recipes {
		assert.Equal(t, alice, r.UserID)
	}
}
