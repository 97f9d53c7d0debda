package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient is a completion client for any OpenAI-compatible endpoint.
// The Groq API speaks the same wire protocol, so both backends share this
// implementation and differ only in base URL, default model and name.
type OpenAIClient struct {
	client       *openai.Client
	name         string
	defaultModel string
	models       []string
}

// NewOpenAIClient creates a client for the OpenAI API.
func NewOpenAIClient(apiKey, defaultModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client:       openai.NewClient(apiKey),
		name:         "openai",
		defaultModel: defaultModel,
		models: []string{
			"gpt-4o",
			"gpt-4o-mini",
			"gpt-4-turbo",
			"gpt-3.5-turbo",
		},
	}, nil
}

// NewGroqClient creates a client for the Groq OpenAI-compatible API.
func NewGroqClient(apiKey, baseURL, defaultModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("Groq API key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if defaultModel == "" {
		defaultModel = "mixtral-8x7b-32768"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &OpenAIClient{
		client:       openai.NewClientWithConfig(cfg),
		name:         "groq",
		defaultModel: defaultModel,
		models: []string{
			"mixtral-8x7b-32768",
			"llama3-70b-8192",
			"llama3-8b-8192",
		},
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return c.name
}

// Models returns available models.
func (c *OpenAIClient) Models() []string {
	return c.models
}

// Complete sends a completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return nil, err
	}

	var content, stopReason string
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		stopReason = string(resp.Choices[0].FinishReason)
	}

	return &CompletionResponse{
		Content:    content,
		Model:      resp.Model,
		TokensIn:   resp.Usage.PromptTokens,
		TokensOut:  resp.Usage.CompletionTokens,
		StopReason: stopReason,
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}
