package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func newGroqTestServer(t *testing.T, handler func(req openai.ChatCompletionRequest) (int, interface{})) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		var payload openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		status, body := handler(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGroqClient_Complete_Success(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := newGroqTestServer(t, func(req openai.ChatCompletionRequest) (int, interface{}) {
		captured = req
		return http.StatusOK, map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "llama3-8b-8192",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "Title: Ship Friday"}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
		}
	})

	client := NewGroqClient(&config.GroqConfig{
		APIKey:      "test-key",
		BaseURL:     ts.URL,
		Model:       "llama3-8b-8192",
		MaxTokens:   800,
		Temperature: 0.8,
		TopP:        1.0,
	})

	out, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "Transcript:\nAlice: let's ship Friday."},
	})
	require.NoError(t, err)

	assert.Equal(t, "Title: Ship Friday", out.Text)
	assert.Equal(t, "llama3-8b-8192", out.Model)
	assert.Equal(t, 12, out.PromptTokens)
	assert.Equal(t, 5, out.CompletionTokens)

	assert.Equal(t, "llama3-8b-8192", captured.Model)
	assert.Equal(t, 800, captured.MaxTokens)
	assert.InDelta(t, 0.8, captured.Temperature, 1e-6)
	assert.InDelta(t, 1.0, captured.TopP, 1e-6)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestGroqClient_Complete_ProviderError(t *testing.T) {
	ts := newGroqTestServer(t, func(openai.ChatCompletionRequest) (int, interface{}) {
		return http.StatusInternalServerError, map[string]interface{}{
			"error": map[string]string{"message": "model overloaded", "type": "server_error"},
		}
	})

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGroqClient_Complete_NoChoices(t *testing.T) {
	ts := newGroqTestServer(t, func(openai.ChatCompletionRequest) (int, interface{}) {
		return http.StatusOK, map[string]interface{}{"id": "x", "choices": []interface{}{}}
	})

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGroqClient_Complete_NoMessages(t *testing.T) {
	client := NewGroqClient(&config.GroqConfig{APIKey: "k"})
	_, err := client.Complete(context.Background(), nil)
	require.Error(t, err)
}

func TestNewGroqClient_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "from-env")
	client := NewGroqClient(nil)
	assert.Equal(t, defaultGroqModel, client.Model())
	assert.Equal(t, defaultMaxTokens, client.maxTokens)
}
