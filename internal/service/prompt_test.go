package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/types"
)

func bulletLines(prompt string) []string {
	var out []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- ") {
			out = append(out, line)
		}
	}
	return out
}

func TestBuildRecipePrompt_AllSubsets(t *testing.T) {
	values := [4]string{"chicken, rice", "Thai", "medium", "gluten-free"}
	labels := [4]string{"Using these ingredients", "Cuisine", "Difficulty level", "Dietary restrictions"}

	for mask := 0; mask < 16; mask++ {
		var req types.GenerateRecipeRequest
		fields := [4]*string{&req.Ingredients, &req.Cuisine, &req.Difficulty, &req.DietaryRestrictions}
		var want []string
		for i := 0; i < 4; i++ {
			if mask&(1<<i) != 0 {
				*fields[i] = values[i]
				want = append(want, "- "+labels[i]+": "+values[i])
			}
		}

		prompt := BuildRecipePrompt(req)

		assert.True(t, strings.HasPrefix(prompt, promptPreamble+"\n"), "mask %04b", mask)
		assert.True(t, strings.HasSuffix(prompt, promptSchema), "mask %04b", mask)
		assert.Equal(t, want, bulletLines(prompt), "mask %04b", mask)
	}
}

func TestBuildRecipePrompt_Layout(t *testing.T) {
	prompt := BuildRecipePrompt(types.GenerateRecipeRequest{
		Ingredients:         "chicken, rice",
		DietaryRestrictions: "no nuts",
	})

	want := "Create a detailed recipe with the following requirements:\n" +
		"- Using these ingredients: chicken, rice\n" +
		"- Dietary restrictions: no nuts\n" +
		"\n" +
		"Please provide a JSON response with this exact structure:\n"
	require.True(t, strings.HasPrefix(prompt, want), prompt)
	assert.Contains(t, prompt, `"difficulty": "easy" | "medium" | "hard"`)
}

func TestBuildRecipePrompt_Empty(t *testing.T) {
	prompt := BuildRecipePrompt(types.GenerateRecipeRequest{})

	assert.Equal(t, promptPreamble+"\n\n"+promptSchema, prompt)
	assert.Empty(t, bulletLines(prompt))
}

func TestBuildRecipePrompt_WhitespaceFieldsAreKept(t *testing.T) {
	prompt := BuildRecipePrompt(types.GenerateRecipeRequest{Cuisine: " ", Difficulty: "\t"})
	assert.Equal(t, []string{"- Cuisine:  ", "- Difficulty level: \t"}, bulletLines(prompt))
}

func TestBuildRecipePrompt_ValuesInsertedVerbatim(t *testing.T) {
	raw := `  "tofu" & {braces} `
	prompt := BuildRecipePrompt(types.GenerateRecipeRequest{Ingredients: raw})
	assert.Contains(t, prompt, "- Using these ingredients: "+raw+"\n")
}
