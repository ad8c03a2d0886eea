package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/service"
)

func TestRecipeValidator_Valid(t *testing.T) {
	v := service.NewRecipeValidator()
	res := v.Validate(json.RawMessage(`{
		"title": "Chicken Rice",
		"description": "Simple",
		"ingredients": ["1 cup rice", "200g chicken"],
		"instructions": ["Cook rice", "Fry chicken"],
		"prep_time": 10,
		"cook_time": 25,
		"servings": 2,
		"difficulty": "easy",
		"cuisine": "Asian",
		"notes": "extra fields are allowed"
	}`))

	require.True(t, res.Valid, res.Mismatches)
	assert.Empty(t, res.Mismatches)
	assert.Equal(t, "Chicken Rice", res.Recipe.Title)
	assert.Equal(t, 35, res.Recipe.PrepTime+res.Recipe.CookTime)
}

func TestRecipeValidator_Mismatches(t *testing.T) {
	v := service.NewRecipeValidator()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "wrong type",
			raw:  `{"title":"X","ingredients":["a"],"instructions":["b"],"servings":"four","difficulty":"easy"}`,
			want: "servings: expected int",
		},
		{
			name: "missing title",
			raw:  `{"ingredients":["a"],"instructions":["b"],"servings":1,"difficulty":"easy"}`,
			want: "title: failed required",
		},
		{
			name: "blank ingredient",
			raw:  `{"title":"X","ingredients":["a",""],"instructions":["b"],"servings":1,"difficulty":"easy"}`,
			want: "ingredients[1]: failed required",
		},
		{
			name: "unknown difficulty",
			raw:  `{"title":"X","ingredients":["a"],"instructions":["b"],"servings":1,"difficulty":"extreme"}`,
			want: "difficulty: failed oneof=easy medium hard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(json.RawMessage(tt.raw))
			assert.False(t, res.Valid)
			require.NotEmpty(t, res.Mismatches)
			assert.Contains(t, res.Mismatches[0], tt.want)
		})
	}
}
