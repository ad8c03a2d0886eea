package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pageza/recipe-share/backend/internal/types"
)

// ErrShapeMismatch means the parsed object did not pass output validation
var ErrShapeMismatch = errors.New("generated recipe does not match the expected shape")

// ErrorKind classifies why a generation request failed
type ErrorKind string

const (
	// KindRequest is set by callers when the request body cannot be decoded.
	KindRequest       ErrorKind = "request"
	KindUpstream      ErrorKind = "upstream"
	KindExtraction    ErrorKind = "extraction"
	KindParse         ErrorKind = "parse"
	KindShapeMismatch ErrorKind = "shape_mismatch"
)

// GenerationError wraps a failure of the generation flow with its kind
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recipe generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure came from the model provider
// rather than from the content it returned.
func (e *GenerationError) Retryable() bool {
	return e.Kind == KindUpstream
}

// TextGenerator submits a prompt to a hosted model and returns one completion
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// RecipeGenerator turns a generation request into a parsed recipe object
type RecipeGenerator struct {
	llm       TextGenerator
	model     string
	extractor JSONExtractor
	validator *RecipeValidator
}

// GeneratorOption configures a RecipeGenerator
type GeneratorOption func(*RecipeGenerator)

// WithExtractor swaps the extraction strategy (greedy by default)
func WithExtractor(e JSONExtractor) GeneratorOption {
	return func(g *RecipeGenerator) {
		g.extractor = e
	}
}

// WithValidation enables the shape check on parsed output
func WithValidation(v *RecipeValidator) GeneratorOption {
	return func(g *RecipeGenerator) {
		g.validator = v
	}
}

// NewRecipeGenerator creates a new RecipeGenerator instance
func NewRecipeGenerator(llm TextGenerator, model string, opts ...GeneratorOption) *RecipeGenerator {
	g := &RecipeGenerator{
		llm:       llm,
		model:     model,
		extractor: GreedyExtractor{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the prompt, calls the model once and extracts the recipe.
// Failures are returned as *GenerationError.
func (g *RecipeGenerator) Generate(ctx context.Context, req types.GenerateRecipeRequest) (json.RawMessage, error) {
	prompt := BuildRecipePrompt(req)

	text, err := g.llm.GenerateText(ctx, g.model, prompt)
	if err != nil {
		return nil, &GenerationError{Kind: KindUpstream, Err: err}
	}

	candidate, err := g.extractor.Extract(text)
	if err != nil {
		return nil, &GenerationError{Kind: KindExtraction, Err: err}
	}

	raw, err := ParseRecipe(candidate)
	if err != nil {
		return nil, &GenerationError{Kind: KindParse, Err: err}
	}

	if g.validator != nil {
		if res := g.validator.Validate(raw); !res.Valid {
			return nil, &GenerationError{
				Kind: KindShapeMismatch,
				Err:  fmt.Errorf("%w: %s", ErrShapeMismatch, strings.Join(res.Mismatches, "; ")),
			}
		}
	}

	return raw, nil
}
