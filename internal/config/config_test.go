package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("LLM_MAX_TOKENS", "")
	t.Setenv("LLM_MODEL", "deepseek/deepseek-r1-0528:free")
	t.Setenv("CHAT_ATOMIC_NEW_SESSION", "")

	cfg := Load()

	assert.Equal(t, "deepseek/deepseek-r1-0528:free", cfg.Ai.LLMModel)
	assert.Equal(t, 0.6, cfg.Ai.Temperature)
	assert.Equal(t, 2500, cfg.Ai.MaxTokens)
	assert.Equal(t, "", cfg.Ai.OpenRouterAPIKey)
	assert.False(t, cfg.Chat.AtomicNewSession)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_MAX_TOKENS", "512")
	t.Setenv("CHAT_ATOMIC_NEW_SESSION", "true")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "sk-or-test", cfg.Ai.OpenRouterAPIKey)
	assert.Equal(t, 0.2, cfg.Ai.Temperature)
	assert.Equal(t, 512, cfg.Ai.MaxTokens)
	assert.True(t, cfg.Chat.AtomicNewSession)
	assert.Equal(t, 587, cfg.SMTP.Port)
}
