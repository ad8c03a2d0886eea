package service

import (
	"strings"

	"github.com/pageza/recipe-share/backend/internal/types"
)

const promptPreamble = "Create a detailed recipe with the following requirements:"

const promptSchema = `Please provide a JSON response with this exact structure:
{
  "title": "Recipe name",
  "description": "Brief description",
  "ingredients": ["ingredient 1", "ingredient 2", ...],
  "instructions": ["step 1", "step 2", ...],
  "prep_time": number (in minutes),
  "cook_time": number (in minutes),
  "servings": number,
  "difficulty": "easy" | "medium" | "hard",
  "cuisine": "cuisine type"
}`

// BuildRecipePrompt assembles the generation prompt. Each non-empty field
// adds one bullet, in the order ingredients, cuisine, difficulty, dietary
// restrictions. Values are inserted verbatim.
func BuildRecipePrompt(req types.GenerateRecipeRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n")

	bullet := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("- ")
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	bullet("Using these ingredients", req.Ingredients)
	bullet("Cuisine", req.Cuisine)
	bullet("Difficulty level", req.Difficulty)
	bullet("Dietary restrictions", req.DietaryRestrictions)

	b.WriteString("\n")
	b.WriteString(promptSchema)
	return b.String()
}
