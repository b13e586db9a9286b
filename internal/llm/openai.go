package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/raghavkonduri05/member-qa-system/internal/metrics"
)

// OpenAIClient calls the OpenAI chat completion API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAI creates an OpenAI-backed generation client. The HTTP client is
// bounded so a hung completion cannot block a request forever.
func NewOpenAI(apiKey, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: 0.3,
		maxTokens:   300,
	}
}

// Complete sends one chat completion request and returns the raw answer text.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	metrics.GenerationLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationFailures.Inc()
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		metrics.GenerationFailures.Inc()
		return "", &GenerationError{Err: errors.New("response contained no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}
