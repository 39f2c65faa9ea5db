package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Chat roles understood by the provider
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama3-8b-8192"
	defaultMaxTokens   = 800
	defaultTimeout     = 60 * time.Second
)

// Message is a single chat turn
type Message struct {
	Role    string
	Content string
}

// Completion is the provider's answer for one request
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Completer turns a message list into generated text
type Completer interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
	Model() string
}

// GroqClient calls Groq's OpenAI-compatible chat completion endpoint
type GroqClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var c config.GroqConfig
	if cfg != nil {
		c = *cfg
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultGroqBaseURL
	}
	if c.Model == "" {
		c.Model = defaultGroqModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	clientConfig := openai.DefaultConfig(c.APIKey)
	clientConfig.BaseURL = c.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: c.Timeout}

	return &GroqClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       c.Model,
		maxTokens:   c.MaxTokens,
		temperature: c.Temperature,
		topP:        c.TopP,
	}
}

// Model returns the model identifier sent with every request
func (g *GroqClient) Model() string {
	return g.model
}

// Complete sends the messages to Groq and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages to send")
	}

	chat := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chat = append(chat, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    chat,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		TopP:        g.topP,
	})
	if err != nil {
		return nil, fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from groq")
	}

	model := resp.Model
	if model == "" {
		model = g.model
	}
	return &Completion{
		Text:             resp.Choices[0].Message.Content,
		Model:            model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
