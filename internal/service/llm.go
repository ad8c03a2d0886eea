package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// LLMService talks to an OpenAI-compatible chat completion API
type LLMService struct {
	client *openai.Client
}

// NewLLMService creates a new LLMService instance. An empty baseURL keeps
// the OpenAI default.
func NewLLMService(apiKey, baseURL string) (*LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &LLMService{client: openai.NewClientWithConfig(cfg)}, nil
}

// GenerateText sends prompt as a single user message with no sampling
// parameters and returns the first choice.
func (s *LLMService) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return resp.Choices[0].Message.Content, nil
}
