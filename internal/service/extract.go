package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoJSONObject means the model output contained no brace-delimited candidate
	ErrNoJSONObject = errors.New("no JSON object found in model response")
	// ErrMalformedJSON means a candidate was found but did not parse as a JSON object
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)

// JSONExtractor locates a candidate JSON object inside free-form model output
type JSONExtractor interface {
	Extract(text string) (string, error)
}

var greedyObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// GreedyExtractor returns the widest span from the first '{' to the last '}'.
// Any stray brace after the intended object ends up inside the candidate.
type GreedyExtractor struct{}

func (GreedyExtractor) Extract(text string) (string, error) {
	m := greedyObjectPattern.FindString(text)
	if m == "" {
		return "", ErrNoJSONObject
	}
	return m, nil
}

// BalancedExtractor returns the first brace-balanced object starting at the
// first '{', ignoring braces inside string literals.
type BalancedExtractor struct{}

func (BalancedExtractor) Extract(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONObject
}

// NewJSONExtractor maps a strategy name to an extractor
func NewJSONExtractor(name string) (JSONExtractor, error) {
	switch name {
	case "", "greedy":
		return GreedyExtractor{}, nil
	case "balanced":
		return BalancedExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

// ParseRecipe checks that candidate is a single JSON object and returns it
// compacted, with its content otherwise untouched.
func ParseRecipe(candidate string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
