package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{
			name: "object surrounded by prose",
			text: `Sure! Here is your recipe: {"title":"X","servings":2} Enjoy!`,
			want: `{"title":"X","servings":2}`,
		},
		{
			name: "spans lines",
			text: "```json\n{\n  \"title\": \"X\"\n}\n```",
			want: "{\n  \"title\": \"X\"\n}",
		},
		{
			name: "first brace to last brace",
			text: `{"a":1} and {"b":2}`,
			want: `{"a":1} and {"b":2}`,
		},
		{
			name:    "no braces",
			text:    "I cannot help with that.",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "closing brace before opening",
			text:    "} nothing here {",
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GreedyExtractor{}.Extract(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalancedExtractor(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{
			name: "stops at the first complete object",
			text: `{"a":1} and {"b":2}`,
			want: `{"a":1}`,
		},
		{
			name: "nested objects",
			text: `Recipe: {"title":"X","meta":{"tags":["a"]}} trailing }`,
			want: `{"title":"X","meta":{"tags":["a"]}}`,
		},
		{
			name: "braces inside strings",
			text: `{"title":"curly } brace","note":"escaped \" quote {"}`,
			want: `{"title":"curly } brace","note":"escaped \" quote {"}`,
		},
		{
			name:    "unterminated",
			text:    `{"title":"X"`,
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "no braces",
			text:    "nothing",
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BalancedExtractor{}.Extract(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewJSONExtractor(t *testing.T) {
	e, err := NewJSONExtractor("")
	require.NoError(t, err)
	assert.IsType(t, GreedyExtractor{}, e)

	e, err = NewJSONExtractor("balanced")
	require.NoError(t, err)
	assert.IsType(t, BalancedExtractor{}, e)

	_, err = NewJSONExtractor("lazy")
	assert.Error(t, err)
}

func TestParseRecipe(t *testing.T) {
	raw, err := ParseRecipe("{\n  \"title\": \"X\",\n  \"extra\": [1, 2]\n}")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"X","extra":[1,2]}`, string(raw))

	_, err = ParseRecipe(`{title: Soup}`)
	assert.ErrorIs(t, err, ErrMalformedJSON)

	_, err = ParseRecipe(`{"a":1} and {"b":2}`)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}
