package provider

import (
	"context"
	"fmt"

	"github.com/like-mike/listener-relay/config"
)

// NewProviderFromConfig constructs the CompletionProvider selected by cfg.Provider.
// Supported values: "openai" (default if empty) and "gemini".
func NewProviderFromConfig(ctx context.Context, cfg *config.Config) (CompletionProvider, error) {
	switch cfg.Provider {
	case "", config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
