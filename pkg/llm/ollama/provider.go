package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emoticore-be/pkg/llm"

	"github.com/ollama/ollama/api"
)

type OllamaProvider struct {
	ModelName   string
	Temperature float64
	MaxTokens   int
	client      *api.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) (*OllamaProvider, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &OllamaProvider{
		ModelName:   modelName,
		Temperature: 0.7,
		client:      api.NewClient(base, &http.Client{Timeout: timeout}),
	}, nil
}

// Available is always true; a local daemon needs no credentials.
func (o *OllamaProvider) Available() bool {
	return true
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
		Model:       o.ModelName,
	}, opts...)

	messages := make([]api.Message, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages[i] = api.Message{Role: role, Content: msg.Content}
	}

	modelOptions := map[string]any{"temperature": options.Temperature}
	if options.MaxTokens > 0 {
		modelOptions["num_predict"] = options.MaxTokens
	}

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  modelOptions,
	}

	var content strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}

	if content.Len() == 0 {
		return "", fmt.Errorf("ollama chat: %w", llm.ErrEmptyCompletion)
	}
	return content.String(), nil
}
