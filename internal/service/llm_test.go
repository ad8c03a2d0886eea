package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/service"
)

func TestNewLLMService(t *testing.T) {
	_, err := service.NewLLMService("", "")
	assert.Error(t, err)

	svc, err := service.NewLLMService("sk-test", "")
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestLLMService_GenerateText(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: got.Model,
			Choices: []openai.ChatCompletionChoice{
				{Index: 0, Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: `{"title":"X"}`}},
			},
		})
	}))
	defer srv.Close()

	svc, err := service.NewLLMService("sk-test", srv.URL+"/v1")
	require.NoError(t, err)

	text, err := svc.GenerateText(context.Background(), "gpt-4o-mini", "make soup")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"X"}`, text)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Equal(t, "make soup", got.Messages[0].Content)
	assert.Zero(t, got.Temperature)
	assert.Zero(t, got.MaxTokens)
}

func TestLLMService_GenerateText_Errors(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		}))
		defer srv.Close()

		svc, err := service.NewLLMService("sk-test", srv.URL+"/v1")
		require.NoError(t, err)

		_, err = svc.GenerateText(context.Background(), "gpt-4o-mini", "make soup")
		assert.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[]}`))
		}))
		defer srv.Close()

		svc, err := service.NewLLMService("sk-test", srv.URL+"/v1")
		require.NoError(t, err)

		_, err = svc.GenerateText(context.Background(), "gpt-4o-mini", "make soup")
		assert.EqualError(t, err, "no response from API")
	})
}
