package suggest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tabviz/tabviz/internal/domain"
)

// Generator produces a text completion for a prompt. Implementations
// fail with *domain.ProviderError on quota, timeout or transport
// problems; any other error is treated as retryable malformed output.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient is the production Generator backed by an
// OpenAI-compatible chat-completion endpoint.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewOpenAIClient creates a chat-completion client. baseURL may be
// empty to use the provider default.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: 0.7,
		maxTokens:   2000,
	}
}

// Complete sends one system+user exchange and returns the raw model
// text.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", wrapProviderError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("model returned an empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func wrapProviderError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &domain.ProviderError{StatusCode: apierr.StatusCode, Err: err}
	}

	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = http.StatusGatewayTimeout
	}
	return &domain.ProviderError{StatusCode: status, Err: err}
}
