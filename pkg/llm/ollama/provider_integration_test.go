package ollama

import (
	"context"
	"os"
	"testing"
	"time"

	"emoticore-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama daemon, e.g.
// OLLAMA_INTEGRATION_URL=http://localhost:11434 OLLAMA_INTEGRATION_MODEL=gemma:2b
func TestOllamaIntegration(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_INTEGRATION_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION_URL not set")
	}
	model := os.Getenv("OLLAMA_INTEGRATION_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	provider, err := NewOllamaProvider(baseURL, model, 2*time.Minute)
	require.NoError(t, err)

	reply, err := provider.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "Answer in one short sentence."},
		{Role: llm.RoleUser, Content: "How can I calm down before an exam?"},
	}, llm.WithMaxTokens(64))
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
