package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_prompt.yaml
var defaultPromptFile []byte

var ErrPromptNotFound = errors.New("prompt: active version not found")

// SystemPrompt is one resolved, versioned system message.
type SystemPrompt struct {
	Version string `yaml:"version"`
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

type promptFile struct {
	Active  string         `yaml:"active"`
	Prompts []SystemPrompt `yaml:"prompts"`
}

// Load reads the prompt file at path, or the embedded default when path is empty.
func Load(path string) (*SystemPrompt, error) {
	data := defaultPromptFile
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompt file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (*SystemPrompt, error) {
	var file promptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompt file: %w", err)
	}

	for i := range file.Prompts {
		p := file.Prompts[i]
		if p.Version != file.Active {
			continue
		}
		p.Content = strings.TrimSpace(p.Content)
		if p.Content == "" {
			return nil, fmt.Errorf("prompt %s has empty content", p.Version)
		}
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPromptNotFound, file.Active)
}
