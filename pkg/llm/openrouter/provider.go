package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"emoticore-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// PlaceholderAPIKey is the value shipped in sample env files; it never authenticates.
	PlaceholderAPIKey = "your-openrouter-api-key"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	AppTitle    string // X-Title header
	Referer     string // HTTP-Referer header
}

type OpenRouterProvider struct {
	cfg    Config
	client *openai.Client
}

var _ llm.LLMProvider = &OpenRouterProvider{}

func NewOpenRouterProvider(cfg Config) *OpenRouterProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"X-Title":      cfg.AppTitle,
				"HTTP-Referer": cfg.Referer,
			},
		},
	}

	return &OpenRouterProvider{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenRouterProvider) Available() bool {
	return p.cfg.APIKey != "" && p.cfg.APIKey != PlaceholderAPIKey
}

func (p *OpenRouterProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if !p.Available() {
		return "", llm.ErrNotConfigured
	}

	options := llm.ApplyOptions(llm.Options{
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
		Model:       p.cfg.Model,
	}, opts...)

	ctx, span := otel.Tracer("emoticore/llm/openrouter").Start(ctx, "openrouter.chat")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", options.Model),
		attribute.Int("llm.messages", len(history)),
	)

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("openrouter completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "no choices")
		return "", fmt.Errorf("openrouter completion: no choices: %w", llm.ErrEmptyCompletion)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		span.SetStatus(codes.Error, "empty content")
		return "", fmt.Errorf("openrouter completion: %w", llm.ErrEmptyCompletion)
	}

	span.SetAttributes(attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens))
	return content, nil
}

// headerTransport stamps OpenRouter attribution headers on every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			clone.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(clone)
}
