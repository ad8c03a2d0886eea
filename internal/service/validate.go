package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GeneratedRecipe is the shape the model is asked to produce
type GeneratedRecipe struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	PrepTime     int      `json:"prep_time" validate:"gte=0"`
	CookTime     int      `json:"cook_time" validate:"gte=0"`
	Servings     int      `json:"servings" validate:"gte=1"`
	Difficulty   string   `json:"difficulty" validate:"oneof=easy medium hard"`
	Cuisine      string   `json:"cuisine"`
}

// ValidationResult is either a valid record or a list of shape mismatches
type ValidationResult struct {
	Valid      bool
	Recipe     *GeneratedRecipe
	Mismatches []string
}

// RecipeValidator checks parsed model output against GeneratedRecipe
type RecipeValidator struct {
	validate *validator.Validate
}

// NewRecipeValidator creates a validator that reports fields by their JSON names
func NewRecipeValidator() *RecipeValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RecipeValidator{validate: v}
}

// Validate decodes raw into a GeneratedRecipe and checks its shape
func (v *RecipeValidator) Validate(raw json.RawMessage) ValidationResult {
	var recipe GeneratedRecipe
	var mismatches []string

	if err := json.Unmarshal(raw, &recipe); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return ValidationResult{Mismatches: []string{err.Error()}}
		}
		mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value))
	}

	if err := v.validate.Struct(&recipe); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			mismatches = append(mismatches, err.Error())
		}
		for _, fe := range fieldErrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			mismatches = append(mismatches, fmt.Sprintf("%s: failed %s", fieldPath(fe), rule))
		}
	}

	if len(mismatches) > 0 {
		return ValidationResult{Recipe: &recipe, Mismatches: mismatches}
	}
	return ValidationResult{Valid: true, Recipe: &recipe}
}

// fieldPath drops the struct name from the namespace, e.g. "ingredients[1]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
