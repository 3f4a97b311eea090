package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrEmptyCompletion is returned when the backend answered but produced no usable text.
	ErrEmptyCompletion = errors.New("llm: empty completion")
	// ErrNotConfigured is returned by Chat when Available reports false.
	ErrNotConfigured = errors.New("llm: provider not configured")
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds opts over base.
func ApplyOptions(base Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the first completion
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Available reports whether the provider has the credentials it needs.
	// Callers check it before Chat; a false result means no request is made.
	Available() bool
}
