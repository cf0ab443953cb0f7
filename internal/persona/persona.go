package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultModel         = "gemini-2.5-flash"
	defaultMaxIterations = 10
)

// Persona defines an exploration agent's identity: its system prompt plus
// the model settings it runs with.
type Persona struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	SystemPrompt  string `yaml:"system_prompt"`
	Model         string `yaml:"model"`
	MaxIterations int    `yaml:"max_iterations"`
}

// Load reads a persona definition from a YAML file and applies defaults for
// omitted model settings.
func Load(path string) (*Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file %s: %w", path, err)
	}

	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse persona file %s: %w", path, err)
	}

	if p.Model == "" {
		p.Model = defaultModel
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = defaultMaxIterations
	}

	return &p, nil
}
