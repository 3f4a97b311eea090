package factory

import (
	"testing"

	"emoticore-be/internal/config"
	"emoticore-be/pkg/llm/ollama"
	"emoticore-be/pkg/llm/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(config.AIConfig{LLMProvider: "openrouter", OpenRouterAPIKey: "your-openrouter-api-key"}, "")
	require.NoError(t, err)
	assert.IsType(t, &openrouter.OpenRouterProvider{}, p)
	assert.False(t, p.Available())

	p, err = NewLLMProvider(config.AIConfig{LLMProvider: "ollama", LLMModel: "llama3"}, "")
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	_, err = NewLLMProvider(config.AIConfig{LLMProvider: "gemini"}, "")
	assert.Error(t, err)
}
