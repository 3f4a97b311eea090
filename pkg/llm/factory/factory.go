package factory

import (
	"fmt"
	"time"

	"emoticore-be/internal/config"
	"emoticore-be/pkg/llm"
	"emoticore-be/pkg/llm/ollama"
	"emoticore-be/pkg/llm/openrouter"
)

func NewLLMProvider(cfg config.AIConfig, referer string) (llm.LLMProvider, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.LLMProvider {
	case "", "openrouter":
		return openrouter.NewOpenRouterProvider(openrouter.Config{
			APIKey:      cfg.OpenRouterAPIKey,
			BaseURL:     cfg.OpenRouterBaseURL,
			Model:       cfg.LLMModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     timeout,
			AppTitle:    cfg.AppTitle,
			Referer:     referer,
		}), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		p, err := ollama.NewOllamaProvider(baseURL, cfg.LLMModel, timeout)
		if err != nil {
			return nil, err
		}
		p.Temperature = cfg.Temperature
		p.MaxTokens = cfg.MaxTokens
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
