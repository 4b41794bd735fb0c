package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPersona is the listener persona sent as the system message.
const DefaultPersona = "You are a listener who helps users explore their thoughts and feelings. " +
	"Do not respond in the first person perspective. " +
	"Respond with reflective soft encouragement, open-ended questions, and helpful suggestions, " +
	"allowing users to feel heard and understood. " +
	"You prioritize understanding the user's emotional state, while gently attempting to guide " +
	"the user's thoughts with empathetic curiosity. " +
	"Keep responses short but supportive and use previous things said by the user to think of what to say next. " +
	"Use different phrases."

// ExcerptInstruction asks the model to quote the words of the user it
// responded to.
const ExcerptInstruction = "At the end of your response, append the specific phrase (or consecutive words) " +
	"that the user said that you used to generate your response. " +
	"Format this appended text as follows: [User: 'specific words']. " +
	"For example, if the user says 'I feel sad', you would append [User: 'sad']."

// Persona is the on-disk form of PERSONA_FILE.
type Persona struct {
	SystemPrompt string `yaml:"system_prompt"`
	QuoteExcerpt *bool  `yaml:"quote_excerpt"`
}

// LoadPersona reads and parses a persona YAML file.
func LoadPersona(path string) (*Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var persona Persona
	if err := yaml.Unmarshal(data, &persona); err != nil {
		return nil, fmt.Errorf("failed to parse persona file: %w", err)
	}
	return &persona, nil
}

// BuildSystemPrompt returns the default persona, with the excerpt
// instruction appended when quoteExcerpt is set.
func BuildSystemPrompt(quoteExcerpt bool) string {
	if !quoteExcerpt {
		return DefaultPersona
	}
	return DefaultPersona + " " + ExcerptInstruction
}
