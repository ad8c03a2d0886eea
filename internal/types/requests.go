package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrRequestNotObject is returned when a generation body is valid JSON but not an object
var ErrRequestNotObject = errors.New("request body must be a JSON object")

// GenerateRecipeRequest is the body of a recipe generation request.
// Every field is optional free text.
type GenerateRecipeRequest struct {
	Ingredients         string `json:"ingredients"`
	Cuisine             string `json:"cuisine"`
	Difficulty          string `json:"difficulty"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
}

// UnmarshalJSON accepts any JSON value per field and keeps its text form.
// Arrays are joined with commas, so ["chicken","rice"] becomes "chicken,rice",
// and objects are kept as compact JSON.
// null, false, 0 and "" all mean the field was not given.
func (r *GenerateRecipeRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrRequestNotObject
	}

	var fields struct {
		Ingredients         json.RawMessage `json:"ingredients"`
		Cuisine             json.RawMessage `json:"cuisine"`
		Difficulty          json.RawMessage `json:"difficulty"`
		DietaryRestrictions json.RawMessage `json:"dietaryRestrictions"`
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}

	var err error
	if r.Ingredients, err = promptText(fields.Ingredients); err != nil {
		return err
	}
	if r.Cuisine, err = promptText(fields.Cuisine); err != nil {
		return err
	}
	if r.Difficulty, err = promptText(fields.Difficulty); err != nil {
		return err
	}
	if r.DietaryRestrictions, err = promptText(fields.DietaryRestrictions); err != nil {
		return err
	}
	return nil
}

func promptText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	if b, ok := v.(bool); ok && !b {
		return "", nil
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil && f == 0 {
			return "", nil
		}
	}
	return textOf(v), nil
}

func textOf(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t.String()
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = textOf(item)
		}
		return strings.Join(parts, ",")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// RecipeRequest represents the request body for creating or updating a recipe
type RecipeRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description"`
	Ingredients   []string `json:"ingredients" binding:"required"`
	Instructions  []string `json:"instructions" binding:"required"`
	PrepTime      int      `json:"prep_time" binding:"gte=0"`
	CookTime      int      `json:"cook_time" binding:"gte=0"`
	Servings      int      `json:"servings" binding:"omitempty,gte=1"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Cuisine       string   `json:"cuisine" binding:"max=100"`
	ImageURL      string   `json:"image_url" binding:"omitempty,url"`
	IsAIGenerated bool     `json:"is_ai_generated"`
}

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
